package wizard

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/anyang-health/triage-app/schema"
)

// Screen names one wizard step. The wizard is an ordered, named sequence
// of screens; each parameterized screen declares the exact parameter set
// it must be handed.
type Screen string

const (
	ScreenSplash           Screen = "splash"
	ScreenLogin            Screen = "login"
	ScreenRegister         Screen = "register"
	ScreenRegisterComplete Screen = "register_complete"
	ScreenHome             Screen = "home"
	ScreenBodySelect       Screen = "body_select"
	ScreenRegionDetail     Screen = "region_detail"
	ScreenSymptomChat      Screen = "symptom_chat"
	ScreenLoading          Screen = "loading"
	ScreenHospitalFinder   Screen = "hospital_finder"
	ScreenHospitalDetail   Screen = "hospital_detail"
	ScreenEmergencyReport  Screen = "emergency_report"
)

var (
	ErrMissingParams = fmt.Errorf("screen entered without its required parameters")
	ErrBottomOfStack = fmt.Errorf("cannot pop the last remaining screen")
)

// Params is the typed parameter bag carried across one navigation edge.
type Params interface {
	Validate() error
}

type RegionDetailParams struct {
	Region schema.BodyRegion
}

func (p RegionDetailParams) Validate() error {
	if !p.Region.Valid() {
		return ErrMissingParams
	}
	return nil
}

type LoadingParams struct {
	Query schema.SymptomQuery
}

func (p LoadingParams) Validate() error {
	if p.Query.Symptom == "" || !p.Query.Coordinate.Valid() {
		return ErrMissingParams
	}
	return nil
}

type HospitalFinderParams struct {
	Hospitals []schema.Hospital
}

// An empty hospital list is a legal parameter set; the finder renders an
// empty state for it. Only a nil list means the edge was never handed
// its payload.
func (p HospitalFinderParams) Validate() error {
	if p.Hospitals == nil {
		return ErrMissingParams
	}
	return nil
}

type HospitalDetailParams struct {
	Hospital       schema.Hospital
	UserCoordinate *schema.Coordinate
}

func (p HospitalDetailParams) Validate() error {
	if p.Hospital.ID == "" {
		return ErrMissingParams
	}
	return nil
}

// paramContracts declares, per screen, the parameter type it requires.
// Screens absent from the table take no parameters.
var paramContracts = map[Screen]func(Params) error{
	ScreenRegionDetail: func(p Params) error {
		rp, ok := p.(RegionDetailParams)
		if !ok {
			return ErrMissingParams
		}
		return rp.Validate()
	},
	ScreenLoading: func(p Params) error {
		lp, ok := p.(LoadingParams)
		if !ok {
			return ErrMissingParams
		}
		return lp.Validate()
	},
	ScreenHospitalFinder: func(p Params) error {
		fp, ok := p.(HospitalFinderParams)
		if !ok {
			return ErrMissingParams
		}
		return fp.Validate()
	},
	ScreenHospitalDetail: func(p Params) error {
		dp, ok := p.(HospitalDetailParams)
		if !ok {
			return ErrMissingParams
		}
		return dp.Validate()
	},
}

type entry struct {
	screen Screen
	params Params
}

// Machine is the wizard navigation stack. Forward navigation must pass
// the exact parameter set the target screen declares; backward
// navigation pops unconditionally. Replace swaps the current screen for
// terminal steps so a stale intermediate state cannot be re-entered.
type Machine struct {
	stack []entry
}

func NewMachine() *Machine {
	return &Machine{
		stack: []entry{{screen: ScreenSplash}},
	}
}

func (m *Machine) Current() Screen {
	return m.stack[len(m.stack)-1].screen
}

func (m *Machine) CurrentParams() Params {
	return m.stack[len(m.stack)-1].params
}

func (m *Machine) Depth() int {
	return len(m.stack)
}

func (m *Machine) Push(s Screen, p Params) error {
	if err := checkParams(s, p); nil != err {
		return err
	}
	m.stack = append(m.stack, entry{screen: s, params: p})
	return nil
}

func (m *Machine) Replace(s Screen, p Params) error {
	if err := checkParams(s, p); nil != err {
		return err
	}
	m.stack[len(m.stack)-1] = entry{screen: s, params: p}
	return nil
}

func (m *Machine) Pop() error {
	if len(m.stack) <= 1 {
		return ErrBottomOfStack
	}
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

func checkParams(s Screen, p Params) error {
	check, needs := paramContracts[s]
	if !needs {
		return nil
	}
	if p == nil {
		return ErrMissingParams
	}
	return check(p)
}

// Context carries the input accumulated over one user journey. Screens
// receive their slice of it through navigation parameters only.
type Context struct {
	JourneyID  string
	Region     schema.BodyRegion
	Coordinate *schema.Coordinate
	Query      *schema.SymptomQuery
	Hospitals  []schema.Hospital
	Selected   *schema.Hospital
}

func NewContext() *Context {
	return &Context{
		JourneyID: uuid.New().String(),
	}
}
