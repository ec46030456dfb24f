package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"nutriai/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipesJSON = `[
  {"title": "Omelete", "ingredients": [
    {"nome_ingrediente": "ovo", "quantidade": 2, "unidade": "unidade"},
    {"nome_ingrediente": "cebola", "quantidade": "1", "unidade": "unidade"},
    {"nome_ingrediente": "sal", "quantidade": "a gosto"}
  ]},
  {"title": "Refogado", "ingredients": [
    {"name": "cebola", "quantity": "2", "unit": "unidades"},
    {"name": "alho", "quantity": "8", "unit": "dentes"}
  ]}
]`

func testLoader(t *testing.T) configLoader {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "recipes.db")
	return func() (*config.Config, error) {
		cfg := config.Default()
		cfg.AI.Enabled = false
		cfg.Database.DSN = dsn
		return cfg, nil
	}
}

func run(t *testing.T, load configLoader, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCmd(load)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, testLoader(t), "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "compute")
	assert.Contains(t, out, "shopping")
}

func TestImportComputeAndShop(t *testing.T) {
	load := testLoader(t)
	file := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(file, []byte(recipesJSON), 0o644))

	out, err := run(t, load, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported recipe 1: Omelete")
	assert.Contains(t, out, "Imported recipe 2: Refogado")

	out, err = run(t, load, "compute", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2 recipes, 2 succeeded, 0 failed")

	// 已計算的食譜不會再被 new 模式選取
	out, err = run(t, load, "compute")
	require.NoError(t, err)
	assert.Contains(t, out, "0 recipes")

	out, err = run(t, load, "compute", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 recipes, 1 succeeded")

	out, err = run(t, load, "shopping", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "- Alho: 1 cabeca\n- Cebola: 3 unidades\n- Ovo: 2 unidades\n", out)
}

func TestComputeRejectsBadArguments(t *testing.T) {
	load := testLoader(t)
	_, err := run(t, load, "compute", "abc")
	assert.Error(t, err)

	_, err = run(t, load, "compute", "--mode", "range")
	assert.Error(t, err)

	_, err = run(t, load, "shopping")
	assert.Error(t, err)
}

func TestResolveCommand(t *testing.T) {
	out, err := run(t, testLoader(t), "resolve", "farinha", "de", "trigo")
	require.NoError(t, err)
	assert.Contains(t, out, "Outcome: resolved")
}
