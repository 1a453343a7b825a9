package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/maauso/corpusprep/internal/bootstrap"
	"github.com/maauso/corpusprep/internal/config"
	"github.com/maauso/corpusprep/internal/dataset"
	"github.com/maauso/corpusprep/internal/prepare"
)

type prepareOptions struct {
	datasetsFile string
	outputDir    string
	runID        string
	push         bool
}

func newPrepareCmd(root *rootOptions) *cobra.Command {
	opts := &prepareOptions{}

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Load every dataset and write train/eval manifests",
		Long: `Load every dataset listed in the datasets file, shuffle each one,
carve an evaluation subset out of datasets without a validation manifest,
and write train.txt and eval.txt under OUTPUT_DIR/<run id>/.

Example datasets file (datasets.yaml):
  datasets:
    - name: ljspeech
      path: /data/LJSpeech-1.1
      meta_file_train: metadata.csv
    - name: tts-portuguese
      path: /data/TTS-Portuguese
      meta_file_train: train.csv
      meta_file_val: valid.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrepare(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.datasetsFile, "datasets", "d", "", "datasets file (overrides DATASETS_FILE)")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "output directory (overrides OUTPUT_DIR)")
	cmd.Flags().StringVar(&opts.runID, "run-id", "", "output subdirectory name (generated when empty)")
	cmd.Flags().BoolVar(&opts.push, "push", false, "upload manifests to S3 (requires S3_BUCKET and S3_REGION)")
	return cmd
}

func runPrepare(cmd *cobra.Command, root *rootOptions, opts *prepareOptions) error {
	overrides := map[string]string{}
	if opts.datasetsFile != "" {
		overrides["DATASETS_FILE"] = opts.datasetsFile
	}
	if opts.outputDir != "" {
		overrides["OUTPUT_DIR"] = opts.outputDir
	}

	cfg, err := config.LoadWithOverrides(root.envFile, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.push && !cfg.S3Enabled() {
		return fmt.Errorf("--push requires S3_BUCKET and S3_REGION")
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting corpusprep",
		slog.String("datasets_file", cfg.DatasetsFile),
		slog.String("output_dir", cfg.OutputDir),
		slog.Int("eval_split_max", cfg.EvalSplitMax),
		slog.Float64("eval_split_ratio", cfg.EvalSplitRatio),
		slog.String("short_clip_policy", cfg.ShortClipPolicy),
		slog.Bool("s3_enabled", cfg.S3Enabled()),
	)

	descriptors, err := dataset.Load(cfg.DatasetsFile)
	if err != nil {
		return err
	}

	deps, err := bootstrap.NewDependencies(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	out, err := deps.PrepareService.Run(cmd.Context(), prepare.Input{
		Descriptors: descriptors,
		RunID:       opts.runID,
		PushToS3:    opts.push,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "run:   %s\n", out.RunID)
	fmt.Fprintf(w, "train: %s (%d records)\n", out.TrainPath, out.TrainCount)
	fmt.Fprintf(w, "eval:  %s (%d records)\n", out.EvalPath, out.EvalCount)
	if out.TrainURL != "" {
		fmt.Fprintf(w, "train url: %s\n", out.TrainURL)
		fmt.Fprintf(w, "eval url:  %s\n", out.EvalURL)
	}
	return nil
}
