package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportSheetRejectsUnsupportedExtensions(t *testing.T) {
	// Legacy binary .xls is not OOXML and cannot be read as a workbook,
	// so it gets the clear unsupported-type error up front.
	for _, path := range []string{"statement.xls", "statement.ods", "statement.txt"} {
		cmd := importSheetCmd()
		err := runImportSheet(cmd, []string{path})
		require.Error(t, err, "path %s", path)
		assert.Contains(t, err.Error(), "unsupported file type", "path %s", path)
	}
}
