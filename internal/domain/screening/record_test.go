package screening

import "testing"

func TestBuildRecord(t *testing.T) {
	assessment, err := Classify(intPtr(5), TwoQAnswers{Q3: 1}, []int{1, 1, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	rec := BuildRecord(Subject{CitizenID: "1234567890123", FullName: "Somchai J."}, assessment)

	if !rec.CitizenID.Valid || rec.CitizenID.String != "1234567890123" {
		t.Errorf("citizen id = %+v, want valid 1234567890123", rec.CitizenID)
	}
	if !rec.FullName.Valid || rec.FullName.String != "Somchai J." {
		t.Errorf("full name = %+v, want valid Somchai J.", rec.FullName)
	}
	if rec.FacilityCode.Valid {
		t.Errorf("empty facility code should map to NULL, got %+v", rec.FacilityCode)
	}
	if !rec.StressScore.Valid || rec.StressScore.Int64 != 5 {
		t.Errorf("stress score = %+v, want valid 5", rec.StressScore)
	}
	if rec.Q8Total != 2 || rec.RiskLevel != RiskMedium {
		t.Errorf("q8_total=%d risk_level=%s, want 2/medium", rec.Q8Total, rec.RiskLevel)
	}
	if rec.Recommendation == "" {
		t.Error("recommendation should carry over from the assessment")
	}
	if rec.ID != 0 || !rec.CreatedAt.IsZero() {
		t.Error("ID and CreatedAt must be left for the store to assign")
	}
}

func TestBuildRecordNilStress(t *testing.T) {
	assessment, err := Classify(nil, TwoQAnswers{}, nil)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	rec := BuildRecord(Subject{}, assessment)
	if rec.StressScore.Valid {
		t.Errorf("absent stress score should map to NULL, got %+v", rec.StressScore)
	}
}
