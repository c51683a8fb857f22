package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anyang-health/triage-app/external/triage"
	"github.com/anyang-health/triage-app/geo"
	"github.com/anyang-health/triage-app/schema"
	"github.com/anyang-health/triage-app/session"
)

func (a *App) splash(ctx context.Context) error {
	a.prompter.Say(a.t(msgSplashWelcome, nil))

	_, err := a.sessions.Read()
	switch err {
	case nil:
		return a.machine.Replace(ScreenHome, nil)
	case session.ErrSessionExpired:
		a.prompter.Say(a.t(msgSessionExpired, nil))
	case session.ErrNoSession:
		a.prompter.Say(a.t(msgSplashLoginNeeded, nil))
	default:
		log.WithField("error", err).Warn("session store unreadable")
		a.prompter.Say(a.t(msgSplashLoginNeeded, nil))
	}
	return a.machine.Replace(ScreenLogin, nil)
}

func (a *App) login(ctx context.Context) error {
	choice, err := a.prompter.Choose(a.t(msgLoginMenu, nil), []string{
		a.t(msgLoginOptionLogin, nil),
		a.t(msgLoginOptionRegister, nil),
	})
	if nil != err {
		return err
	}
	if choice == 1 {
		return a.machine.Push(ScreenRegister, nil)
	}

	userID, err := a.prompter.Ask(a.t(msgLoginPromptID, nil))
	if nil != err {
		return err
	}
	password, err := a.prompter.Ask(a.t(msgLoginPromptPassword, nil))
	if nil != err {
		return err
	}

	if userID == "" || password == "" {
		a.prompter.Say(a.t(msgLoginMissingFields, nil))
		return nil
	}

	if _, err := a.svc.Login(ctx, userID, password); nil != err {
		if triage.IsKind(err, triage.KindAuthentication) {
			a.prompter.Say(a.t(msgLoginInvalid, nil))
		} else {
			a.prompter.Say(a.apiErrorMessage(err))
		}
		return nil
	}

	return a.machine.Replace(ScreenHome, nil)
}

func (a *App) register(ctx context.Context) error {
	userID, err := a.prompter.Ask(a.t(msgLoginPromptID, nil))
	if nil != err {
		return err
	}
	if userID == "" {
		a.prompter.Say(a.t(msgRegisterMissingFields, nil))
		return nil
	}

	available, err := a.svc.CheckUserIDAvailable(ctx, userID)
	if nil != err {
		a.prompter.Say(a.apiErrorMessage(err))
		return nil
	}
	if !available {
		a.prompter.Say(a.t(msgRegisterIDTaken, nil))
		return nil
	}

	password, err := a.prompter.Ask(a.t(msgLoginPromptPassword, nil))
	if nil != err {
		return err
	}
	confirm, err := a.prompter.Ask(a.t(msgRegisterPromptConfirm, nil))
	if nil != err {
		return err
	}
	nickname, err := a.prompter.Ask(a.t(msgRegisterPromptNickname, nil))
	if nil != err {
		return err
	}

	params := triage.RegisterParams{
		UserID:          userID,
		Password:        password,
		PasswordConfirm: confirm,
		Nickname:        nickname,
	}
	if err := params.Validate(); nil != err {
		if password != confirm {
			a.prompter.Say(a.t(msgRegisterMismatch, nil))
		} else {
			a.prompter.Say(a.t(msgRegisterMissingFields, nil))
		}
		return nil
	}

	if err := a.svc.Register(ctx, params); nil != err {
		if triage.IsKind(err, triage.KindConflict) {
			a.prompter.Say(a.t(msgRegisterIDTaken, nil))
		} else {
			a.prompter.Say(a.apiErrorMessage(err))
		}
		return nil
	}

	return a.machine.Replace(ScreenRegisterComplete, nil)
}

func (a *App) registerComplete() error {
	a.prompter.Say(a.t(msgRegisterComplete, nil))
	return a.machine.Pop()
}

func (a *App) home(ctx context.Context) error {
	choice, err := a.prompter.Choose(a.t(msgHomeTitle, nil), []string{
		a.t(msgHomeOptionTriage, nil),
		a.t(msgHomeOptionEmergency, nil),
		a.t(msgHomeOptionLogout, nil),
		a.t(msgHomeOptionQuit, nil),
	})
	if nil != err {
		return err
	}

	switch choice {
	case 0:
		// A fresh journey starts at body selection.
		a.journey = NewContext()
		return a.machine.Push(ScreenBodySelect, nil)
	case 1:
		return a.machine.Push(ScreenEmergencyReport, nil)
	case 2:
		if err := a.svc.Logout(); nil != err {
			log.WithField("error", err).Error("clear session")
			a.prompter.Say(a.t(msgErrServer, nil))
			return nil
		}
		return a.machine.Replace(ScreenLogin, nil)
	default:
		return errQuit
	}
}

func (a *App) bodySelect() error {
	regions := schema.BodyRegions()
	options := make([]string, 0, len(regions)+1)
	for _, r := range regions {
		options = append(options, a.t(regionMessage(r), nil))
	}
	options = append(options, a.t(msgFinderOptionBack, nil))

	choice, err := a.prompter.Choose(a.t(msgBodySelectTitle, nil), options)
	if nil != err {
		return err
	}
	if choice == len(regions) {
		return a.machine.Pop()
	}

	region := regions[choice]
	a.journey.Region = region
	return a.machine.Push(ScreenRegionDetail, RegionDetailParams{Region: region})
}

func (a *App) regionDetail() error {
	params, ok := a.machine.CurrentParams().(RegionDetailParams)
	if !ok {
		a.prompter.Say(a.t(msgErrServer, nil))
		return a.machine.Pop()
	}

	a.prompter.Say(a.t(msgRegionDetailInfo, map[string]interface{}{
		"Region": a.t(regionMessage(params.Region), nil),
	}))

	ok, err := a.prompter.Confirm(a.t(msgRegionDetailContinue, nil))
	if nil != err {
		return err
	}
	if !ok {
		return a.machine.Pop()
	}
	return a.machine.Push(ScreenSymptomChat, nil)
}

func (a *App) symptomChat(ctx context.Context) error {
	a.prompter.Say(a.t(msgChatGreeting, nil))

	var symptom string
	for symptom == "" {
		answer, err := a.prompter.Ask(a.t(msgChatPrompt, nil))
		if nil != err {
			return err
		}
		symptom = strings.TrimSpace(answer)
	}

	granted, err := a.locations.RequestPermission(ctx)
	if nil != err {
		return err
	}
	if !granted {
		// The recommendation flow needs a real fix; no fallback here.
		a.prompter.Say(a.t(msgLocationDenied, nil))
		return nil
	}

	fix, err := a.locations.CurrentCoordinate(ctx, geo.Options{
		HighAccuracy: a.cfg.HighAccuracy,
		Timeout:      a.cfg.LocationTimeout,
		MaxAge:       a.cfg.LocationMaxAge,
	})
	if nil != err {
		a.prompter.Say(a.locationErrorMessage(err))
		return nil
	}

	a.journey.Coordinate = &fix
	query := schema.SymptomQuery{
		Symptom:    symptom,
		Coordinate: fix,
	}
	a.journey.Query = &query

	return a.machine.Push(ScreenLoading, LoadingParams{Query: query})
}

// loading is the terminal fetch step: exactly one recommendation request
// per entry, bound to the screen's lifetime. A result arriving after the
// screen is gone is discarded with the cancelled context.
func (a *App) loading(ctx context.Context) error {
	params, ok := a.machine.CurrentParams().(LoadingParams)
	if !ok {
		a.prompter.Say(a.t(msgErrServer, nil))
		return a.machine.Pop()
	}

	a.prompter.Say(a.t(msgLoadingSearching, nil))

	screenCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		hospitals []schema.Hospital
		err       error
	}
	out := make(chan result, 1)
	go func() {
		hospitals, err := a.svc.Recommend(screenCtx, params.Query)
		out <- result{hospitals: hospitals, err: err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-out:
		if nil != res.err {
			a.prompter.Say(a.apiErrorMessage(res.err))
			return a.machine.Pop()
		}
		hospitals := res.hospitals
		if hospitals == nil {
			hospitals = []schema.Hospital{}
		}
		a.journey.Hospitals = hospitals
		return a.machine.Replace(ScreenHospitalFinder, HospitalFinderParams{Hospitals: hospitals})
	}
}

func (a *App) hospitalFinder(ctx context.Context) error {
	params, ok := a.machine.CurrentParams().(HospitalFinderParams)
	if !ok {
		a.prompter.Say(a.t(msgErrServer, nil))
		return a.machine.Pop()
	}

	a.prompter.Say(a.t(msgFinderTitle, nil))

	if len(params.Hospitals) == 0 {
		a.prompter.Say(a.t(msgFinderEmpty, nil))
		return a.machine.Pop()
	}

	coord := a.currentCoordinate(ctx)
	hospitals := make([]schema.Hospital, len(params.Hospitals))
	copy(hospitals, params.Hospitals)
	geo.SortByDistance(hospitals, coord)

	options := make([]string, 0, len(hospitals)+2)
	for _, h := range hospitals {
		options = append(options, a.formatHospital(h))
	}
	options = append(options, a.t(msgHomeOptionEmergency, nil), a.t(msgFinderOptionBack, nil))

	choice, err := a.prompter.Choose(a.t(msgFinderChoose, nil), options)
	if nil != err {
		return err
	}
	switch {
	case choice == len(hospitals):
		return a.machine.Push(ScreenEmergencyReport, nil)
	case choice == len(hospitals)+1:
		return a.machine.Pop()
	}

	selected := hospitals[choice]
	a.journey.Selected = &selected
	return a.machine.Push(ScreenHospitalDetail, HospitalDetailParams{
		Hospital:       selected,
		UserCoordinate: coord,
	})
}

func (a *App) hospitalDetail(ctx context.Context) error {
	params, ok := a.machine.CurrentParams().(HospitalDetailParams)
	if !ok {
		a.prompter.Say(a.t(msgErrServer, nil))
		return a.machine.Pop()
	}

	a.prompter.Say(a.t(msgDetailLoading, nil))

	screenCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		hospital schema.Hospital
		err      error
	}
	out := make(chan result, 1)
	go func() {
		h, err := a.svc.HospitalDetail(screenCtx, params.Hospital.ID, params.UserCoordinate)
		out <- result{hospital: h, err: err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-out:
		if nil != res.err {
			a.prompter.Say(a.t(msgDetailFailed, nil))
			a.prompter.Say(a.apiErrorMessage(res.err))
			return a.machine.Pop()
		}
		a.renderDetail(res.hospital, params.UserCoordinate)
	}

	if _, err := a.prompter.Confirm(a.t(msgDetailBack, nil)); nil != err {
		return err
	}
	return a.machine.Pop()
}

func (a *App) renderDetail(h schema.Hospital, at *schema.Coordinate) {
	lines := []string{h.Name}
	if at != nil && h.Coordinate != nil {
		lines = append(lines, fmt.Sprintf("%.1fkm", geo.Distance(*at, *h.Coordinate)))
	}
	if h.Address != "" {
		lines = append(lines, h.Address)
	}
	if h.OperatingStatus != "" {
		lines = append(lines, h.OperatingStatus)
	}
	if h.BusinessHours != "" {
		lines = append(lines, h.BusinessHours)
	}
	if len(h.Specialties) > 0 {
		lines = append(lines, strings.Join(h.Specialties, ", "))
	}
	if h.Phone != "" {
		lines = append(lines, h.Phone)
	}
	if h.RecommendationReason != "" {
		lines = append(lines, h.RecommendationReason)
	}
	a.prompter.Say(strings.Join(lines, "\n"))
}

func (a *App) formatHospital(h schema.Hospital) string {
	parts := []string{h.Name}
	if h.HasDistance {
		parts = append(parts, fmt.Sprintf("%.1fkm", h.DistanceKm))
	} else {
		parts = append(parts, a.t(msgFinderDistanceUnknown, nil))
	}
	if h.Address != "" {
		parts = append(parts, h.Address)
	}
	if h.BusinessHours != "" {
		parts = append(parts, h.BusinessHours)
	}
	return strings.Join(parts, " · ")
}

func (a *App) emergencyReport() error {
	ok, err := a.prompter.Confirm(a.t(msgEmergencyConfirm, nil))
	if nil != err {
		return err
	}
	if !ok {
		return a.machine.Pop()
	}

	a.prompter.Say(a.t(msgEmergencyDispatching, nil))

	receipt := fmt.Sprintf("%s-%d", shortID(a.journey.JourneyID), time.Now().Unix())
	a.prompter.Say(a.t(msgEmergencyConnected, map[string]interface{}{
		"Receipt": receipt,
	}))
	log.WithField("receipt", receipt).Info("emergency report filed")

	if _, err := a.prompter.Confirm(a.t(msgEmergencyDone, nil)); nil != err {
		return err
	}
	return a.machine.Pop()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
