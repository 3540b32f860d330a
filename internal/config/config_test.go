package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/aayushbajaj/fits-stats/internal/config"
)

var configEnvVars = []string{
	"FITS_CONFIG", "FITS_DB_PATH", "FITS_LOG_LEVEL", "FITS_LOG_FILE", "FITS_THEME",
	"FITS_WEEK_CONSISTENCY_DAYS", "FITS_MONTH_CONSISTENCY_DAYS", "DB_PATH",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then the built-in defaults apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBPath, convey.ShouldEqual, "../../data/fits.db")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.Theme, convey.ShouldEqual, "default")
				convey.So(cfg.WeekConsistencyDays, convey.ShouldEqual, 3)
				convey.So(cfg.MonthConsistencyDays, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When FITS_ variables are set", func() {
			_ = os.Setenv("FITS_DB_PATH", "/tmp/fits-env.db")
			_ = os.Setenv("FITS_LOG_LEVEL", "debug")
			_ = os.Setenv("FITS_MONTH_CONSISTENCY_DAYS", "7")
			_ = os.Setenv("FITS_LOG_FILE", "/var/log/fitsstats.log")

			cfg, err := config.Load()

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBPath, convey.ShouldEqual, "/tmp/fits-env.db")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MonthConsistencyDays, convey.ShouldEqual, 7)
				convey.So(cfg.LogFile, convey.ShouldEqual, "/var/log/fitsstats.log")
			})

			convey.Convey("And DB_PATH takes precedence over FITS_DB_PATH", func() {
				_ = os.Setenv("DB_PATH", "/data/fits.db")
				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBPath, convey.ShouldEqual, "/data/fits.db")
			})
		})

		convey.Convey("When a YAML file is named by FITS_CONFIG", func() {
			path := filepath.Join(t.TempDir(), "fits.yaml")
			content := "db_path: /srv/fits.db\ntheme: gruvbox\nweek_consistency_days: 4\n"
			convey.So(os.WriteFile(path, []byte(content), 0o644), convey.ShouldBeNil)
			_ = os.Setenv("FITS_CONFIG", path)

			cfg, err := config.Load()

			convey.Convey("Then the file values are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DBPath, convey.ShouldEqual, "/srv/fits.db")
				convey.So(cfg.Theme, convey.ShouldEqual, "gruvbox")
				convey.So(cfg.WeekConsistencyDays, convey.ShouldEqual, 4)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})

			convey.Convey("And env still beats the file", func() {
				_ = os.Setenv("FITS_THEME", "catppuccin")
				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Theme, convey.ShouldEqual, "catppuccin")
			})
		})

		convey.Convey("When FITS_CONFIG points at a missing file", func() {
			_ = os.Setenv("FITS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			_, err := config.Load()

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When db_path is blank", func() {
			_ = os.Setenv("DB_PATH", "  ")
			_, err := config.Load()

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
