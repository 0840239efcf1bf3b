package agent

import (
	"testing"

	"github.com/hupe1980/slotmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titleSpec() Spec {
	return Spec{
		Name:        "TitleAndDescriptionAgent",
		Fields:      []string{"eventTitle", "eventDescription"},
		Labels:      map[string]string{"eventTitle": "event title", "eventDescription": "event description"},
		Prompt:      "What is your event about?",
		Instruction: NewInstructionFromText("Extract title and description."),
	}
}

func TestSpec_ExtractionInstructionNarrowsToMissing(t *testing.T) {
	s := titleSpec()

	full, err := s.ExtractionInstruction(core.Fields{}, s.Missing(core.Fields{}), nil)
	require.NoError(t, err)
	assert.Equal(t, "Extract title and description.", full)

	f := core.Fields{"eventTitle": "Jazz Night"}
	missing := s.Missing(f)
	assert.Equal(t, []string{"eventDescription"}, missing)
	one, err := s.ExtractionInstruction(f, missing, nil)
	require.NoError(t, err)
	assert.Equal(t, `Extract the eventDescription from the user input. Reply as JSON: {"eventDescription": "..."}`, one)
	assert.NotContains(t, one, "eventTitle")
}

func TestSpec_JointInstructionNamesOnlyMissing(t *testing.T) {
	s := Spec{Name: "A", Fields: []string{"a", "b", "c"}}
	f := core.Fields{"a": "x"}
	got, err := s.ExtractionInstruction(f, s.Missing(f), nil)
	require.NoError(t, err)
	assert.Equal(t, `Extract the following fields from the user input. Reply as JSON: {"b": "...", "c": "..."}`, got)
}

func TestSpec_PromptFor(t *testing.T) {
	s := titleSpec()
	assert.Equal(t, "What is your event about?", s.PromptFor(core.Fields{}, s.Missing(core.Fields{})))

	f := core.Fields{"eventDescription": "A night of jazz"}
	assert.Equal(t, "Please provide the following information: event title.", s.PromptFor(f, s.Missing(f)))
}

func TestSpec_Notice(t *testing.T) {
	s := titleSpec()
	assert.Equal(t, "Sorry, you missed: event title. Please provide all required information before continuing.", s.Notice([]string{"eventTitle"}))

	s.MissingNotice = "custom"
	assert.Equal(t, "custom", s.Notice([]string{"eventTitle"}))
}

func TestSpec_DerivedFieldsAreNotInputs(t *testing.T) {
	s := Spec{
		Name:    "ImageAgent",
		Fields:  []string{"wantsImage", "imageDescription", "imageReference"},
		Derived: []string{"imageReference"},
		Required: func(f core.Fields) []string {
			if f["wantsImage"] == "yes" {
				return []string{"wantsImage", "imageDescription"}
			}
			return []string{"wantsImage"}
		},
	}
	assert.Equal(t, []string{"wantsImage", "imageDescription"}, s.Inputs())
	assert.Equal(t, []string{"wantsImage"}, s.Missing(core.Fields{}))
	assert.Empty(t, s.Missing(core.Fields{"wantsImage": "no"}))
	assert.Equal(t, []string{"imageDescription"}, s.Missing(core.Fields{"wantsImage": "yes"}))
	assert.Equal(t, []string{"imageDescription"}, s.Writable(core.Fields{"wantsImage": "yes"}))
}

func TestSpec_CorrectionInstruction(t *testing.T) {
	single := Spec{Name: "VenueAgent", Fields: []string{"venue"}}
	assert.Equal(t, SingleFieldInstruction("venue"), single.CorrectionInstruction())

	multi := titleSpec()
	got := multi.CorrectionInstruction()
	assert.Contains(t, got, `"eventTitle": "..."`)
	assert.Contains(t, got, `"eventDescription": "..."`)
}

func TestSpec_IsValid(t *testing.T) {
	t.Run("default requires all inputs", func(t *testing.T) {
		s := titleSpec()
		assert.False(t, s.IsValid(core.Fields{"eventTitle": "x"}))
		assert.True(t, s.IsValid(core.Fields{"eventTitle": "x", "eventDescription": "y"}))
	})

	t.Run("panicking validator is invalid", func(t *testing.T) {
		s := titleSpec()
		s.Validate = func(core.Fields) bool { panic("boom") }
		assert.False(t, s.IsValid(core.Fields{"eventTitle": "x", "eventDescription": "y"}))
	})

	t.Run("validator only sees own fields", func(t *testing.T) {
		s := titleSpec()
		var seen core.Fields
		s.Validate = func(f core.Fields) bool { seen = f; return true }
		s.IsValid(core.Fields{"eventTitle": "x", "venue": "y"})
		assert.NotContains(t, seen, "venue")
	})
}

func TestSpec_DefaultSummary(t *testing.T) {
	s := titleSpec()
	got := s.Summary(core.Fields{"eventTitle": "Jazz", "eventDescription": "Live"})
	assert.Equal(t, "event title: Jazz\nevent description: Live\nIs this correct? (yes/no)", got)
}

func TestCatalog_Check(t *testing.T) {
	ok := Catalog{titleSpec(), {Name: "VenueAgent", Fields: []string{"venue"}}}
	require.NoError(t, ok.Check())
	assert.Equal(t, []string{"eventTitle", "eventDescription", "venue"}, ok.Schema())

	_, found := ok.Find("VenueAgent")
	assert.True(t, found)

	dupField := Catalog{titleSpec(), {Name: "Other", Fields: []string{"eventTitle"}}}
	assert.ErrorIs(t, dupField.Check(), ErrDuplicateField)

	dupName := Catalog{titleSpec(), titleSpec()}
	assert.ErrorIs(t, dupName.Check(), ErrDuplicateAgent)
}
