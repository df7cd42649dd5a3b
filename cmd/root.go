/*
Copyright © 2026 Oleh Vyshniak <oleh.vyshniak@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "redline",
	Short: "LLM copy editor for academic papers",
	Long: `A CLI application that copy-edits the body text of an academic paper
stored as a .docx document. Paragraphs between the Introduction and
References headings (plus the first paragraph after the Abstract) are split
into sentences and sent to an LLM editing service for light grammar and
style correction; citations are left untouched. The edited document is
saved alongside a tracked-changes comparison produced by the local word
processor where available.

Supported services: OpenAI, Gemini, Ollama (self-hosted)

Use "redline edit --help" for editing options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initEnv)
}

// initEnv loads a .env file when present (missing is fine) and binds the
// environment variables the editing services read.
func initEnv() {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	_ = viper.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = viper.BindEnv("gemini_api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = viper.BindEnv("model", "REDLINE_MODEL", "GPT_MODEL")
	_ = viper.BindEnv("ollama_url", "OLLAMA_URL")
}
