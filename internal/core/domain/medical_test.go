package domain

import "testing"

func TestEntryType_Valid(t *testing.T) {
	valid := []EntryType{
		EntryPreFightCheck,
		EntryInjuryAssessment,
		EntryMedicalClearance,
		EntrySuspensionIssued,
		EntrySuspensionCleared,
		EntryNote,
	}
	for _, et := range valid {
		if !et.Valid() {
			t.Errorf("%q must be valid", et)
		}
	}

	for _, et := range []EntryType{"", "NOTE", "injury", "tarot_reading"} {
		if et.Valid() {
			t.Errorf("%q must not be valid", et)
		}
	}
}
