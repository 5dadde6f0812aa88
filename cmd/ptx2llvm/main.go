package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ptxamd/ptx2llvm/internal/codegen"
	"github.com/ptxamd/ptx2llvm/internal/config"
	"github.com/ptxamd/ptx2llvm/internal/diag"
	"github.com/ptxamd/ptx2llvm/internal/directive"
	"github.com/ptxamd/ptx2llvm/internal/fixture"
	"github.com/ptxamd/ptx2llvm/internal/normalize"
)

var (
	version   = "0.1.0"
	commit    = "dev"
	formatter = diag.NewFormatter()
)

func main() {
	var cfgPath string
	var logger *zap.Logger

	rootCmd := &cobra.Command{
		Use:   "ptx2llvm",
		Short: "ptx2llvm translates a normalized PTX directive stream into AMDGPU LLVM IR",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			l, err := newLogger(cfg.Logging)
			if err != nil {
				return err
			}
			logger = l
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML configuration file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ptx2llvm v%s (%s)\n", version, commit)
		},
	})

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "translate the built-in vector_add fixture and print the resulting LLVM IR",
		Long: `build has no PTX front end wired in: this module's core starts from an
already-parsed directive stream. It translates internal/fixture's demo
kernel so the pipeline (identifier resolution, normalization, and LLVM
emission) can be exercised end-to-end without one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			out, _ := cmd.Flags().GetString("out")
			optimize, _ := cmd.Flags().GetBool("optimize")
			dumpNormalized, _ := cmd.Flags().GetBool("dump-normalized")
			return runBuild(logger, cfg, out, optimize, dumpNormalized)
		},
	}
	buildCmd.Flags().StringP("out", "o", "", "write the emitted .ll to this path instead of stdout")
	buildCmd.Flags().Bool("optimize", false, "pipe the emitted IR through opt before printing")
	buildCmd.Flags().Bool("dump-normalized", false, "print the normalized directive stream to stderr before emitting IR")
	rootCmd.AddCommand(buildCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

type ctxKey int

const cfgKey ctxKey = 0

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, cfgKey, cfg)
}

func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(cfgKey).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if !cfg.JSON {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build()
}

func runBuild(logger *zap.Logger, cfg *config.Config, out string, optimize, dumpNormalized bool) error {
	directives := fixture.VectorAdd()

	normalized, resolver, err := normalize.Run(directives)
	if err != nil {
		formatter.Format(diag.FromError(diag.StageNormalize, err))
		return err
	}
	logger.Debug("normalized directive stream", zap.Int("directives", len(normalized)))
	if dumpNormalized {
		fmt.Fprint(os.Stderr, directive.PrettyPrint(normalized))
	}

	module, err := codegen.Translate(normalized, resolver.Table())
	if err != nil {
		formatter.Format(diag.FromError(diag.StageCodegen, err))
		return err
	}
	module.TargetTriple = cfg.Target.Triple
	module.DataLayout = cfg.Target.DataLayout

	ir := module.String()
	if optimize {
		optimized, err := optimizeLLVM(logger, cfg.Backend, ir)
		if err != nil {
			logger.Warn("optimization failed, emitting unoptimized IR", zap.Error(err))
		} else {
			ir = optimized
		}
	}

	if out == "" {
		fmt.Print(ir)
		return nil
	}
	return os.WriteFile(out, []byte(ir), 0o644)
}

// optimizeLLVM shells out to opt, following the teacher CLI's llc/opt
// discovery and timeout pattern: optimization is best-effort, and a failure
// to find or run opt falls back to the unoptimized IR rather than failing
// the whole translation.
func optimizeLLVM(logger *zap.Logger, cfg config.BackendConfig, ir string) (string, error) {
	optPath := cfg.OptPath
	if optPath == "" {
		found, err := exec.LookPath("opt")
		if err != nil {
			return "", fmt.Errorf("opt not found in PATH: %w", err)
		}
		optPath = found
	}

	tmp, err := os.CreateTemp("", "ptx2llvm-*.ll")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(ir); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	outPath := tmp.Name() + ".opt"
	defer os.Remove(outPath)

	pipeline := "default<O2>"
	switch cfg.OptimizationLevel {
	case "0", "none":
		return ir, nil
	case "1", "s":
		pipeline = "default<O1>"
	case "3", "z":
		pipeline = "default<O3>"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	args := []string{"-S", "-o", outPath, "-passes=" + pipeline, tmp.Name()}
	logger.Debug("running opt", zap.String("path", optPath), zap.Strings("args", args))
	cmd := exec.CommandContext(ctx, optPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("opt failed: %w: %s", err, stderr.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
