package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind          string
	port          int
	dbPath        string
	mediaDir      string
	mediaBaseURL  string
	s3Bucket      string
	awsRegion     string
	faceThreshold float64
	qrPayload     string
	sessionSecret string
	verbose       bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.s3Bucket != "" && c.awsRegion == "" {
		return errors.New("--aws-region is required when --s3-bucket is set")
	}
	if c.faceThreshold < 0 || c.faceThreshold > 100 {
		return fmt.Errorf("invalid face threshold (must be between 0-100 inclusive): %v", c.faceThreshold)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SCAVHUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "scavhunt",
		Short:         "Backend for a campus scavenger hunt icebreaker game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SCAVHUNT_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: SCAVHUNT_PORT)")
	fs.StringVar(&cfg.dbPath, "db-path", "./data/scavhunt.db", "path to the sqlite database (env: SCAVHUNT_DB_PATH)")
	fs.StringVar(&cfg.mediaDir, "media-dir", "./data/media", "directory for the local media store (env: SCAVHUNT_MEDIA_DIR)")
	fs.StringVar(&cfg.mediaBaseURL, "media-base-url", "/media", "public URL prefix for locally stored media (env: SCAVHUNT_MEDIA_BASE_URL)")
	fs.StringVar(&cfg.s3Bucket, "s3-bucket", "", "S3 bucket for media, uses the local store when empty (env: SCAVHUNT_S3_BUCKET)")
	fs.StringVar(&cfg.awsRegion, "aws-region", "", "AWS region for Rekognition and S3 (env: SCAVHUNT_AWS_REGION)")
	fs.Float64Var(&cfg.faceThreshold, "face-threshold", 0, "similarity score required for a face match, 0 uses the default (env: SCAVHUNT_FACE_THRESHOLD)")
	fs.StringVar(&cfg.qrPayload, "qr-payload", "", "expected payload of the final checkpoint QR code, empty uses the default (env: SCAVHUNT_QR_PAYLOAD)")
	fs.StringVar(&cfg.sessionSecret, "session-secret", "", "signing secret for session tokens (env: SCAVHUNT_SESSION_SECRET)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging (env: SCAVHUNT_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("scavhunt v{{.Version}}\n")

	return cmd
}
