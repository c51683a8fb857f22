package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anyang-health/triage-app/schema"
)

func TestMachineStartsAtSplash(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, ScreenSplash, m.Current())
	assert.Equal(t, 1, m.Depth())
}

func TestPushAndPop(t *testing.T) {
	m := NewMachine()

	assert.NoError(t, m.Push(ScreenBodySelect, nil))
	assert.Equal(t, ScreenBodySelect, m.Current())
	assert.Equal(t, 2, m.Depth())

	assert.NoError(t, m.Pop())
	assert.Equal(t, ScreenSplash, m.Current())
}

func TestPopNeverUnderflows(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, ErrBottomOfStack, m.Pop())
	assert.Equal(t, ScreenSplash, m.Current())
}

func TestReplaceSwapsTopOfStack(t *testing.T) {
	m := NewMachine()

	assert.NoError(t, m.Replace(ScreenLogin, nil))
	assert.Equal(t, ScreenLogin, m.Current())
	assert.Equal(t, 1, m.Depth())

	// Terminal step: login replaces itself with home so back cannot
	// reach a stale login screen.
	assert.NoError(t, m.Replace(ScreenHome, nil))
	assert.Equal(t, ScreenHome, m.Current())
	assert.Equal(t, 1, m.Depth())
}

func TestParameterizedScreenRejectsMissingParams(t *testing.T) {
	m := NewMachine()

	assert.Equal(t, ErrMissingParams, m.Push(ScreenLoading, nil))
	assert.Equal(t, ScreenSplash, m.Current())

	assert.Equal(t, ErrMissingParams, m.Push(ScreenRegionDetail, nil))
	assert.Equal(t, ErrMissingParams, m.Push(ScreenHospitalDetail, nil))
	assert.Equal(t, ErrMissingParams, m.Push(ScreenHospitalFinder, nil))
}

func TestParameterizedScreenRejectsWrongParamType(t *testing.T) {
	m := NewMachine()

	err := m.Push(ScreenLoading, RegionDetailParams{Region: schema.RegionFoot})
	assert.Equal(t, ErrMissingParams, err)
}

func TestLoadingRequiresCompleteQuery(t *testing.T) {
	m := NewMachine()

	err := m.Push(ScreenLoading, LoadingParams{Query: schema.SymptomQuery{Symptom: "허리가 아파요"}})
	assert.Equal(t, ErrMissingParams, err)

	err = m.Push(ScreenLoading, LoadingParams{Query: schema.SymptomQuery{
		Symptom:    "허리가 아파요",
		Coordinate: schema.Coordinate{Latitude: 37.3854, Longitude: 126.9743},
	}})
	assert.NoError(t, err)
	assert.Equal(t, ScreenLoading, m.Current())
}

func TestFinderAcceptsEmptyButNotNilList(t *testing.T) {
	m := NewMachine()

	assert.Equal(t, ErrMissingParams, m.Push(ScreenHospitalFinder, HospitalFinderParams{}))
	assert.NoError(t, m.Push(ScreenHospitalFinder, HospitalFinderParams{Hospitals: []schema.Hospital{}}))
}

func TestHospitalDetailRequiresID(t *testing.T) {
	m := NewMachine()

	assert.Equal(t, ErrMissingParams, m.Push(ScreenHospitalDetail, HospitalDetailParams{}))
	assert.NoError(t, m.Push(ScreenHospitalDetail, HospitalDetailParams{
		Hospital: schema.Hospital{ID: "42"},
	}))

	params, ok := m.CurrentParams().(HospitalDetailParams)
	assert.True(t, ok)
	assert.Equal(t, "42", params.Hospital.ID)
}

func TestContextCarriesJourneyID(t *testing.T) {
	a := NewContext()
	b := NewContext()
	assert.NotEmpty(t, a.JourneyID)
	assert.NotEqual(t, a.JourneyID, b.JourneyID)
}
