package wizard

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/anyang-health/triage-app/external/triage"
	"github.com/anyang-health/triage-app/geo"
	"github.com/anyang-health/triage-app/schema"
	"github.com/anyang-health/triage-app/session"
)

var log = logrus.WithField("prefix", "wizard")

var errQuit = fmt.Errorf("user quit")

// TriageService is the slice of the API client the wizard consumes.
type TriageService interface {
	Login(ctx context.Context, userID, password string) (schema.Session, error)
	Register(ctx context.Context, params triage.RegisterParams) error
	CheckUserIDAvailable(ctx context.Context, userID string) (bool, error)
	Recommend(ctx context.Context, query schema.SymptomQuery) ([]schema.Hospital, error)
	HospitalDetail(ctx context.Context, id string, at *schema.Coordinate) (schema.Hospital, error)
	Logout() error
}

type Config struct {
	// DefaultCoordinate is used for distance sorting when no position fix
	// can be obtained. A zero value disables the fallback and the list
	// falls back to server-given order instead.
	DefaultCoordinate schema.Coordinate

	LocationTimeout time.Duration
	LocationMaxAge  time.Duration
	HighAccuracy    bool
}

// App drives the wizard state machine over a Prompter.
type App struct {
	machine   *Machine
	journey   *Context
	svc       TriageService
	sessions  session.Store
	locations geo.Provider
	prompter  Prompter
	localizer *i18n.Localizer
	cfg       Config
}

func NewApp(svc TriageService, sessions session.Store, locations geo.Provider, prompter Prompter, localizer *i18n.Localizer, cfg Config) *App {
	if localizer == nil {
		localizer = i18n.NewLocalizer(i18n.NewBundle(language.English))
	}
	if cfg.LocationTimeout <= 0 {
		cfg.LocationTimeout = 15 * time.Second
	}
	if cfg.LocationMaxAge <= 0 {
		cfg.LocationMaxAge = 10 * time.Second
	}

	return &App{
		machine:   NewMachine(),
		journey:   NewContext(),
		svc:       svc,
		sessions:  sessions,
		locations: locations,
		prompter:  prompter,
		localizer: localizer,
		cfg:       cfg,
	}
}

// Machine exposes the navigation stack, mainly so tests can assert the
// screen the user ended up on.
func (a *App) Machine() *Machine {
	return a.machine
}

// Run loops over the current screen's handler until the user quits, the
// prompt source is exhausted, or the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); nil != err {
			return err
		}

		var err error
		switch screen := a.machine.Current(); screen {
		case ScreenSplash:
			err = a.splash(ctx)
		case ScreenLogin:
			err = a.login(ctx)
		case ScreenRegister:
			err = a.register(ctx)
		case ScreenRegisterComplete:
			err = a.registerComplete()
		case ScreenHome:
			err = a.home(ctx)
		case ScreenBodySelect:
			err = a.bodySelect()
		case ScreenRegionDetail:
			err = a.regionDetail()
		case ScreenSymptomChat:
			err = a.symptomChat(ctx)
		case ScreenLoading:
			err = a.loading(ctx)
		case ScreenHospitalFinder:
			err = a.hospitalFinder(ctx)
		case ScreenHospitalDetail:
			err = a.hospitalDetail(ctx)
		case ScreenEmergencyReport:
			err = a.emergencyReport()
		default:
			return fmt.Errorf("unknown screen %q", screen)
		}

		if err == errQuit || err == io.EOF {
			return nil
		}
		if nil != err {
			return err
		}
	}
}

func (a *App) apiErrorMessage(err error) string {
	switch triage.KindOf(err) {
	case triage.KindAuthentication:
		return a.t(msgErrAuthRequired, nil)
	case triage.KindUnreachable:
		return a.t(msgErrNetwork, nil)
	default:
		return a.t(msgErrServer, nil)
	}
}

func (a *App) locationErrorMessage(err error) string {
	switch err {
	case geo.ErrPermissionDenied:
		return a.t(msgLocationDenied, nil)
	case geo.ErrTimeout:
		return a.t(msgLocationTimeout, nil)
	default:
		return a.t(msgLocationUnavailable, nil)
	}
}

// currentCoordinate answers the best coordinate for distance display:
// the journey's captured fix, then a fresh provider fix, then the
// configured fallback. Nil means no coordinate at all, in which case
// distances are omitted.
func (a *App) currentCoordinate(ctx context.Context) *schema.Coordinate {
	if a.journey.Coordinate != nil {
		return a.journey.Coordinate
	}

	granted, err := a.locations.RequestPermission(ctx)
	if err == nil && granted {
		fix, err := a.locations.CurrentCoordinate(ctx, geo.Options{
			HighAccuracy: a.cfg.HighAccuracy,
			Timeout:      a.cfg.LocationTimeout,
			MaxAge:       a.cfg.LocationMaxAge,
		})
		if err == nil {
			a.journey.Coordinate = &fix
			return &fix
		}
		log.WithField("error", err).Warn("position lookup failed, using fallback")
	}

	if a.cfg.DefaultCoordinate.Valid() {
		fallback := a.cfg.DefaultCoordinate
		return &fallback
	}
	return nil
}
