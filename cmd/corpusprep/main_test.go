package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"DATASETS_FILE", "OUTPUT_DIR", "EVAL_SPLIT_MAX", "EVAL_SPLIT_RATIO",
	"SHUFFLE_SEED", "MIN_CLIP_SEC", "SHORT_CLIP_POLICY", "FFPROBE_PATH",
	"S3_BUCKET", "S3_REGION", "S3_PREFIX", "S3_ENDPOINT",
	"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "LOG_FORMAT", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFormatsCmd(t *testing.T) {
	out, err := execute(t, "formats")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"cache (tts_cache)",
		"tweb",
		"mailabs",
		"ljspeech",
		"tts-portuguese (tts_portuguese, ttsportuguese)",
		"nancy",
		"commonvoice (commonvoice-de, commonvoice_deutsche)",
	}, "\n")+"\n", out)
}

func TestPrepareCmd(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	corpusDir := filepath.Join(dir, "LJSpeech-1.1")
	require.NoError(t, os.MkdirAll(corpusDir, 0o755))
	var manifest strings.Builder
	for i := range 200 {
		fmt.Fprintf(&manifest, "LJ%04d|Line text|Line text\n", i)
	}
	require.NoError(t, os.WriteFile(filepath.Join(corpusDir, "metadata.csv"), []byte(manifest.String()), 0o644))

	datasetsFile := filepath.Join(dir, "datasets.yaml")
	require.NoError(t, os.WriteFile(datasetsFile, []byte(
		"datasets:\n  - name: LJSpeech\n    path: "+corpusDir+"\n    meta_file_train: metadata.csv\n"), 0o644))

	outDir := filepath.Join(dir, "out")
	out, err := execute(t,
		"--env", filepath.Join(dir, "absent.env"),
		"prepare", "-d", datasetsFile, "-o", outDir, "--run-id", "run-test",
	)
	require.NoError(t, err)

	trainPath := filepath.Join(outDir, "run-test", "train.txt")
	evalPath := filepath.Join(outDir, "run-test", "eval.txt")
	assert.Contains(t, out, "run:   run-test")
	assert.Contains(t, out, trainPath+" (198 records)")
	assert.Contains(t, out, evalPath+" (2 records)")

	train, err := os.ReadFile(trainPath)
	require.NoError(t, err)
	assert.Equal(t, 198, strings.Count(string(train), "\n"))
	assert.Contains(t, string(train), "Line text| "+filepath.Join(corpusDir, "wavs"))
}

func TestPrepareCmd_MissingDatasetsFile(t *testing.T) {
	clearEnv(t)

	_, err := execute(t, "--env", filepath.Join(t.TempDir(), "absent.env"), "prepare")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASETS_FILE")
}

func TestPrepareCmd_PushWithoutS3(t *testing.T) {
	clearEnv(t)

	_, err := execute(t,
		"--env", filepath.Join(t.TempDir(), "absent.env"),
		"prepare", "-d", "datasets.yaml", "--push",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--push requires")
}

func TestPrepareCmd_UnknownFormat(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	datasetsFile := filepath.Join(dir, "datasets.json")
	require.NoError(t, os.WriteFile(datasetsFile, []byte(
		`{"datasets": [{"name": "vctk", "path": "/data", "meta_file_train": "m.txt"}]}`), 0o644))

	_, err := execute(t, "--env", filepath.Join(dir, "absent.env"), "prepare", "-d", datasetsFile, "-o", filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
