package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
	InitData bool   `yaml:"init_data" json:"init_data"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "stockpile",
		Location: "Asia/Shanghai",
		Workdir:  "/var/stockpile",
		Debug:    true,
		InitData: false,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1820,
	},
	Database: DBConfig{
		Type:     "sqlite",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "stockpile",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/stockpile/stockpile.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(cast.ToInt(evalue))
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file falls back to DefaultAppConfig.
func LoadConfig(cfile string) *AppConfig {
	appconfig := new(AppConfig)
	*appconfig = *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stockpile: cannot read config file %s: %v, using defaults\n", cfile, err)
		} else {
			cfg := new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "stockpile: invalid config file %s: %v, using defaults\n", cfile, err)
			} else {
				appconfig = cfg
			}
		}
	}

	setEnvValue("STOCKPILE_SYSTEM_WORKDIR", func(v string) { appconfig.System.Workdir = v })
	setEnvBoolValue("STOCKPILE_SYSTEM_DEBUG", func(v bool) { appconfig.System.Debug = v })
	setEnvBoolValue("STOCKPILE_SYSTEM_INITDATA", func(v bool) { appconfig.System.InitData = v })

	setEnvValue("STOCKPILE_WEB_HOST", func(v string) { appconfig.Web.Host = v })
	setEnvIntValue("STOCKPILE_WEB_PORT", func(v int) { appconfig.Web.Port = v })

	setEnvValue("STOCKPILE_DB_TYPE", func(v string) { appconfig.Database.Type = v })
	setEnvValue("STOCKPILE_DB_HOST", func(v string) { appconfig.Database.Host = v })
	setEnvIntValue("STOCKPILE_DB_PORT", func(v int) { appconfig.Database.Port = v })
	setEnvValue("STOCKPILE_DB_NAME", func(v string) { appconfig.Database.Name = v })
	setEnvValue("STOCKPILE_DB_USER", func(v string) { appconfig.Database.User = v })
	setEnvValue("STOCKPILE_DB_PWD", func(v string) { appconfig.Database.Passwd = v })
	setEnvBoolValue("STOCKPILE_DB_DEBUG", func(v bool) { appconfig.Database.Debug = v })

	setEnvValue("STOCKPILE_LOGGER_MODE", func(v string) { appconfig.Logger.Mode = v })
	setEnvBoolValue("STOCKPILE_LOGGER_FILE_ENABLE", func(v bool) { appconfig.Logger.FileEnable = v })
	setEnvValue("STOCKPILE_LOGGER_FILENAME", func(v string) { appconfig.Logger.Filename = v })

	return appconfig
}

// InitDirs creates the working directory layout.
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(c.System.Workdir, 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
}
