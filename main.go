package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"googlemaps.github.io/maps"

	"github.com/anyang-health/triage-app/external/triage"
	"github.com/anyang-health/triage-app/geo"
	"github.com/anyang-health/triage-app/schema"
	"github.com/anyang-health/triage-app/session"
	"github.com/anyang-health/triage-app/utils"
	"github.com/anyang-health/triage-app/wizard"
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stderr)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("triage")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("log.level", "info")
	viper.SetDefault("lang", "ko")
	viper.SetDefault("i18n.dir", "./i18n")
	viper.SetDefault("api.base_url", "http://localhost:8080/api")
	viper.SetDefault("api.timeout", "10s")
	viper.SetDefault("api.endpoints.login", "/login")
	viper.SetDefault("api.endpoints.register", "/register")
	viper.SetDefault("api.endpoints.user_probe", "/user")
	viper.SetDefault("api.endpoints.recommend", "/hospitals/recommend")
	viper.SetDefault("api.endpoints.hospital_detail", "/hospitals")
	viper.SetDefault("location.consent", false)
	viper.SetDefault("location.high_accuracy", true)
	viper.SetDefault("location.timeout", "15s")
	viper.SetDefault("location.max_age", "10s")
	viper.SetDefault("location.fallback.latitude", schema.DefaultLatitude)
	viper.SetDefault("location.fallback.longitude", schema.DefaultLongitude)

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetDefault("session.file", filepath.Join(home, ".triage-app", "session"))
}

func endpointsFromConfig() triage.Endpoints {
	return triage.Endpoints{
		Login:          viper.GetString("api.endpoints.login"),
		Register:       viper.GetString("api.endpoints.register"),
		UserProbe:      viper.GetString("api.endpoints.user_probe"),
		Recommend:      viper.GetString("api.endpoints.recommend"),
		HospitalDetail: viper.GetString("api.endpoints.hospital_detail"),
	}
}

func newLocationProvider(fallback schema.Coordinate) geo.Provider {
	apiKey := viper.GetString("google.api_key")
	consent := viper.GetBool("location.consent")

	if apiKey == "" {
		log.WithField("prefix", "init").Warn("no geolocation api key, positions come from the configured fallback")
		return geo.NewStaticProvider(fallback, consent)
	}

	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		log.WithField("prefix", "init").WithError(err).Error("create geolocation client")
		return geo.NewStaticProvider(fallback, consent)
	}
	return geo.NewGoogleProvider(client, consent)
}

func main() {
	var configFile string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if dsn := viper.GetString("sentry.dsn"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			AttachStacktrace: true,
			Environment:      viper.GetString("sentry.environment"),
			Dist:             viper.GetString("sentry.dist"),
		}); err != nil {
			log.Error(err)
		}
		log.WithField("prefix", "init").Info("Initialized sentry")
	}

	utils.InitI18NBundle()
	localizer := utils.NewLocalizer(viper.GetString("lang"))

	sessions := session.NewFileStore(viper.GetString("session.file"))

	fallback := schema.Coordinate{
		Latitude:  viper.GetFloat64("location.fallback.latitude"),
		Longitude: viper.GetFloat64("location.fallback.longitude"),
	}

	httpClient := &http.Client{
		Timeout: viper.GetDuration("api.timeout"),
	}
	client := triage.NewClient(viper.GetString("api.base_url"), endpointsFromConfig(), sessions, httpClient)
	log.WithField("prefix", "init").Info("Initialized api client")

	app := wizard.NewApp(
		client,
		sessions,
		newLocationProvider(fallback),
		wizard.NewStdioPrompter(os.Stdin, os.Stdout),
		localizer,
		wizard.Config{
			DefaultCoordinate: fallback,
			LocationTimeout:   viper.GetDuration("location.timeout"),
			LocationMaxAge:    viper.GetDuration("location.max_age"),
			HighAccuracy:      viper.GetBool("location.high_accuracy"),
		})
	log.WithField("prefix", "init").Info("Initialized wizard")

	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("Shutting down")
		cancel()
	}()

	if err := app.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}

	sentry.Flush(2 * time.Second)
}
