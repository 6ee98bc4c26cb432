package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	dir := t.TempDir()
	assert.NoError(t, v.ValidateInputDirectory(dir))
	assert.Error(t, v.ValidateInputDirectory(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	assert.Error(t, v.ValidateInputDirectory(file))
}

func TestValidateWorkbook(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	good := filepath.Join(dir, "F_ventas_sap.xlsx")
	require.NoError(t, os.WriteFile(good, []byte("content"), 0644))
	assert.NoError(t, v.ValidateWorkbook(good))

	empty := filepath.Join(dir, "empty.xlsx")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	assert.Error(t, v.ValidateWorkbook(empty))

	csv := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csv, []byte("a,b"), 0644))
	assert.Error(t, v.ValidateWorkbook(csv))

	assert.Error(t, v.ValidateWorkbook(filepath.Join(dir, "missing.xlsx")))
}

func TestValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	dir := filepath.Join(t.TempDir(), "reports", "nested")
	assert.NoError(t, v.ValidateOutputDirectory(dir))
	assert.DirExists(t, dir)
}
