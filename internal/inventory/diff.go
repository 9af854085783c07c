package inventory

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// UnifiedDiff renders a unified diff between the vault's CSV rendering of
// the dataset and a local CSV file. Returns the empty string when both
// sides are identical.
func UnifiedDiff(path string, vaultCSV, localCSV []byte) string {
	if bytes.Equal(vaultCSV, localCSV) {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff keeps whole CSV rows together in the output.
	vaultStr, localStr := string(vaultCSV), string(localCSV)
	a, b, lineArray := dmp.DiffLinesToChars(vaultStr, localStr)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(vaultStr, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- vault/%s\n", path))
	result.WriteString(fmt.Sprintf("+++ local/%s\n", path))
	result.WriteString(dmp.PatchToText(patches))
	return result.String()
}
