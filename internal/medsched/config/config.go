package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type DatabaseCfg struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type LoggingCfg struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// FixturesCfg holds the target row counts for one generator run.
type FixturesCfg struct {
	Seed            int64 `mapstructure:"seed"`
	Specializations int   `mapstructure:"specializations"`
	Places          int   `mapstructure:"places"`
	Medicines       int   `mapstructure:"medicines"`
	Patients        int   `mapstructure:"patients"`
	Doctors         int   `mapstructure:"doctors"`
	ScheduleDays    int   `mapstructure:"schedule_days"`
	AssignmentDays  int   `mapstructure:"assignment_days"`
	Visits          int   `mapstructure:"visits"`
}

type ReassignCfg struct {
	DoctorID       int64  `mapstructure:"doctor_id"`
	Specialization string `mapstructure:"specialization"`
	Date           string `mapstructure:"date"`
}

type PurgeCfg struct {
	BornBefore string `mapstructure:"born_before"`
}

type ReportCfg struct {
	Format         string      `mapstructure:"format"`
	Output         string      `mapstructure:"output"`
	Specialization string      `mapstructure:"specialization"`
	Sex            string      `mapstructure:"sex"`
	Date           string      `mapstructure:"date"`
	Reassign       ReassignCfg `mapstructure:"reassign"`
	Purge          PurgeCfg    `mapstructure:"purge"`
}

type Config struct {
	Version  string      `mapstructure:"version"`
	Database DatabaseCfg `mapstructure:"database"`
	Fixtures FixturesCfg `mapstructure:"fixtures"`
	Report   ReportCfg   `mapstructure:"report"`
	Logging  LoggingCfg  `mapstructure:"logging"`
}

var cfg *Config

// Load populates global config from a viper instance
func Load(v *viper.Viper) error {
	// set defaults
	v.SetDefault("version", "0.1")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("logging.level", "info")

	v.SetDefault("fixtures.specializations", 9)
	v.SetDefault("fixtures.places", 10)
	v.SetDefault("fixtures.medicines", 10)
	v.SetDefault("fixtures.patients", 30)
	v.SetDefault("fixtures.doctors", 10)
	v.SetDefault("fixtures.schedule_days", 10)
	v.SetDefault("fixtures.assignment_days", 1)
	v.SetDefault("fixtures.visits", 4)

	v.SetDefault("report.format", "table")
	v.SetDefault("report.specialization", "Хирург")
	v.SetDefault("report.sex", "M")
	v.SetDefault("report.reassign.doctor_id", 10)
	v.SetDefault("report.reassign.specialization", "Гинеколог")
	v.SetDefault("report.purge.born_before", "1944-01-01")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	cfg = &c
	return nil
}

func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg
}
