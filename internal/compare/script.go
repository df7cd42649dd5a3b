package compare

import (
	"fmt"
	"strings"
)

// BuildWordScript renders the PowerShell program that drives the Word COM
// automation host: open both documents, compare without formatting, reject
// citation-noise and footnote revisions, save as .docx (wdFormatXMLDocument
// = 16), and quit Word on every exit path.
func BuildWordScript(original, edited, output string) string {
	return fmt.Sprintf(wordScriptTemplate,
		psQuote(original), psQuote(edited),
		ParenPattern, BracketNumPattern, psQuote(output))
}

// psQuote wraps s in PowerShell single quotes, doubling embedded quotes.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

const wordScriptTemplate = `$ErrorActionPreference = 'Stop'
$word = New-Object -ComObject Word.Application
$word.Visible = $false
try {
    $originalDoc = $word.Documents.Open(%s)
    $editedDoc = $word.Documents.Open(%s)
    $comparedDoc = $word.CompareDocuments($originalDoc, $editedDoc, $false, $true)
    foreach ($rev in @($comparedDoc.Revisions)) {
        $txt = $rev.Range.Text
        if ($txt -match '%s' -or $txt -match '%s') {
            $rev.Reject()
        }
    }
    foreach ($footnote in $comparedDoc.Footnotes) {
        foreach ($rev in @($footnote.Range.Revisions)) {
            $rev.Reject()
        }
    }
    $comparedDoc.SaveAs([ref] %s, [ref] 16)
    $comparedDoc.Close($false)
    $originalDoc.Close($false)
    $editedDoc.Close($false)
} finally {
    $word.Quit()
}
`
