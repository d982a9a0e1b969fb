package core

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		WorkDir      string
		RollbarToken string
		Server       ServerConfig
		Database     DatabaseConfig
	}

	ServerConfig struct {
		Address         string
		DebugAddress    string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	DatabaseConfig struct {
		Engine          string // postgres | inmem
		Driver          string // postgres (lib/pq) | pgx
		Host            string
		Port            int
		Name            string
		User            string
		Password        string
		AdminUser       string
		AdminPassword   string
		DisableTLS      bool
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
	}
)

const (
	EngineInmem    = "inmem"
	EnginePostgres = "postgres"
)

func (dbc DatabaseConfig) Address() string {
	return net.JoinHostPort(dbc.Host, strconv.Itoa(dbc.Port))
}

func (conf *Config) setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Centro")
	v.SetDefault("build", "develop")

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugAddress", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)

	v.SetDefault("database.engine", EnginePostgres)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "centro")
	v.SetDefault("database.user", "centro")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 30*time.Minute)
}

// NewConfig loads the configuration of the current environment (ENV).
// Values come from defaults, then `config/.env.<env>` (if present), then environment
// variables prefixed with the env name, eg. DEV_DATABASE_HOST.
func NewConfig() *Config {
	v := viper.New()
	conf := &Config{WorkDir: Getwd()}
	conf.setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("database.name", "centro_test")
	}
	conf.Env = env
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(conf.WorkDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf.Debug = v.GetBool("debug")
	conf.TestMode = v.GetBool("testMode")
	conf.AppName = v.GetString("appName")
	conf.Build = v.GetString("build")
	conf.RollbarToken = v.GetString("rollbarToken")

	conf.Server = ServerConfig{
		Address:         v.GetString("server.address"),
		DebugAddress:    v.GetString("server.debugAddress"),
		ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		DisableReqLogs:  v.GetBool("server.disableReqLogs"),
	}
	conf.Database = DatabaseConfig{
		Engine:          strings.ToLower(v.GetString("database.engine")),
		Driver:          strings.ToLower(v.GetString("database.driver")),
		Host:            v.GetString("database.host"),
		Port:            v.GetInt("database.port"),
		Name:            v.GetString("database.name"),
		User:            v.GetString("database.user"),
		Password:        v.GetString("database.password"),
		AdminUser:       v.GetString("database.adminUser"),
		AdminPassword:   v.GetString("database.adminPassword"),
		DisableTLS:      v.GetBool("database.disableTLS"),
		MaxOpenConns:    v.GetInt("database.maxOpenConns"),
		MaxIdleConns:    v.GetInt("database.maxIdleConns"),
		ConnMaxLifetime: v.GetDuration("database.connMaxLifetime"),
	}
	return conf
}

func (conf *Config) String() string {
	return fmt.Sprintf("%s env=%s build=%s db=%s(%s)", conf.AppName, conf.Env, conf.Build, conf.Database.Engine, conf.Database.Driver)
}
