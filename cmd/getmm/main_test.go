// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/getmm/normalize"
)

const (
	testCounts = "gene,S1,S2\nA,10,5\nB,20,40\n"

	testBioMart = "Gene stable ID\tgene_name\tseqname\tstart\tend\tstrand\texon_name\n" +
		"ENSG01\tA\t1\t1\t1000\t+\tE1\n" +
		"ENSG02\tB\t1\t1\t1500\t+\tE2\n" +
		"ENSG02\tB\t1\t1\t2500\t+\tE3\n"
)

type cliEnv struct {
	dir        string
	configPath string
}

// setupCLI isolates HOME and points --config at a file that does not exist,
// so every run starts from defaults.
func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))
	return &cliEnv{dir: dir, configPath: filepath.Join(dir, "absent.toml")}
}

func (e *cliEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, env *cliEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNormalizeCommand(t *testing.T) {
	env := setupCLI(t)
	countsPath := env.write(t, "counts.csv", testCounts)
	annPath := env.write(t, "genes.tsv", testBioMart)
	factorsPath := filepath.Join(env.dir, "factors.tsv")

	out, errOut, err := runCLI(t, env, "normalize",
		"--counts", countsPath,
		"--annotation", annPath,
		"--factors", factorsPath,
		"--precision", "4")
	require.NoError(t, err, errOut)

	// B averages to 2000 bp, which reproduces the two-gene reference scenario.
	assert.Equal(t, "gene,S1,S2\nA,0.2008,0.02331\nB,0.4017,0.1865\n", out)
	assert.Contains(t, errOut, "msg=\"inputs loaded\"")
	assert.Contains(t, errOut, "Factor")

	factors, err := os.ReadFile(factorsPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(factors)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "S1\t30\t"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "\t4.767\tfalse"), lines[2])
}

func TestNormalizeCommandWritesFileQuietly(t *testing.T) {
	env := setupCLI(t)
	countsPath := env.write(t, "counts.tsv", strings.ReplaceAll(testCounts, ",", "\t"))
	annPath := env.write(t, "genes.tsv", testBioMart)
	outPath := filepath.Join(env.dir, "normalized.tsv")

	out, errOut, err := runCLI(t, env, "--log-level", "warn", "normalize", "-q",
		"--counts", countsPath, "--delimiter", "tab",
		"--annotation", annPath,
		"--center-mode", "raw-values",
		"--workers", "1",
		"-o", outPath)
	require.NoError(t, err, errOut)
	assert.Empty(t, out)
	assert.Empty(t, errOut)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "gene\tS1\tS2\n"))
}

func TestNormalizeCommandDropDegenerate(t *testing.T) {
	env := setupCLI(t)
	countsPath := env.write(t, "counts.csv", "gene,S1,EMPTY,S2\nA,10,0,5\nB,20,0,40\n")
	annPath := env.write(t, "genes.tsv", testBioMart)

	_, _, err := runCLI(t, env, "normalize", "-q", "--counts", countsPath, "--annotation", annPath)
	require.ErrorIs(t, err, normalize.ErrDegenerateSample)
	assert.Equal(t, []string{"EMPTY"}, normalize.FailedSamples(err))

	out, errOut, err := runCLI(t, env, "normalize", "-q", "--drop-degenerate",
		"--counts", countsPath, "--annotation", annPath, "--precision", "4")
	require.NoError(t, err, errOut)
	assert.Equal(t, "gene,S1,S2\nA,0.2008,0.02331\nB,0.4017,0.1865\n", out)
	assert.Contains(t, errOut, "dropping failed samples")
}

func TestNormalizeCommandMissingGene(t *testing.T) {
	env := setupCLI(t)
	countsPath := env.write(t, "counts.csv", "gene,S1\nA,1\nZ,2\n")
	annPath := env.write(t, "genes.tsv", testBioMart)

	_, errOut, err := runCLI(t, env, "normalize", "--counts", countsPath, "--annotation", annPath)
	require.ErrorIs(t, err, normalize.ErrMissingGeneLength)
	assert.Equal(t, []string{"Z"}, normalize.MissingGenes(err))
	assert.Contains(t, errOut, "genes without a length entry")
}

func TestNormalizeCommandRequiresInputs(t *testing.T) {
	env := setupCLI(t)
	_, _, err := runCLI(t, env, "normalize")
	require.ErrorContains(t, err, "--counts")

	_, _, err = runCLI(t, env, "normalize", "--counts", env.write(t, "c.csv", testCounts))
	require.ErrorContains(t, err, "--annotation")

	_, _, err = runCLI(t, env, "normalize", "--read-length", "0",
		"--counts", "c.csv", "--annotation", "a.tsv")
	require.ErrorContains(t, err, "read_length")
}

func TestNormalizeCommandUsesConfigFile(t *testing.T) {
	env := setupCLI(t)
	countsPath := env.write(t, "counts.csv", testCounts)
	annPath := env.write(t, "genes.tsv", testBioMart)
	env.configPath = env.write(t, "getmm.toml",
		"[input]\ncounts = \""+countsPath+"\"\nannotation = \""+annPath+"\"\n\n[output]\nprecision = 4\n")

	out, errOut, err := runCLI(t, env, "normalize", "-q")
	require.NoError(t, err, errOut)
	assert.Equal(t, "gene,S1,S2\nA,0.2008,0.02331\nB,0.4017,0.1865\n", out)
}

func TestLengthsCommand(t *testing.T) {
	env := setupCLI(t)
	gtf := "1\tsrc\texon\t1\t100\t.\t+\t.\tgene_id \"G1\"; gene_name \"ONE\";\n" +
		"1\tsrc\texon\t1\t300\t.\t+\t.\tgene_id \"G1\"; gene_name \"ONE\";\n" +
		"1\tsrc\tgene\t1\t999\t.\t+\t.\tgene_id \"G1\"; gene_name \"ONE\";\n"
	annPath := env.write(t, "genes.gtf", gtf)

	out, errOut, err := runCLI(t, env, "lengths", "--annotation", annPath, "--format", "GTF", "--feature-type", "exon")
	require.NoError(t, err, errOut)
	assert.Equal(t, "gene\tlength\nONE\t200\n", out)

	out, _, err = runCLI(t, env, "lengths", "--annotation", annPath, "--format", "gtf", "--gene-attribute", "gene_id")
	require.NoError(t, err)
	assert.Contains(t, out, "G1\t")
}

func TestConfigInit(t *testing.T) {
	env := setupCLI(t)
	target := filepath.Join(env.dir, "cfg", "config.toml")

	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote sample configuration")
	_, err = os.Stat(target)
	require.NoError(t, err)

	_, _, err = runCLI(t, env, "config", "init", "--path", target)
	require.ErrorContains(t, err, "already exists")

	_, _, err = runCLI(t, env, "config", "init", "--path", target, "--overwrite")
	require.NoError(t, err)
}
