package services

import (
	"errors"
	"testing"

	"github.com/wizardsmarket/wizards/internal/models"
)

func uintRef(value uint) *uint {
	return &value
}

func completeExpertSnapshot() ProfileSnapshot {
	return ProfileSnapshot{
		User: models.User{
			FirstName: "Ada",
			LastName:  "Lovelace",
			CountryID: uintRef(1),
			RoleID:    uintRef(1),
		},
		RoleName: models.RoleNameExpert,
		Expert: &models.ExpertProfile{
			Bio:          "Platform specialist",
			ProfessionID: uintRef(2),
			Skills:       []models.ExpertSkill{{Name: "Automation"}},
			Tools:        []models.ExpertTool{{Name: "Zapier"}},
			Expertise:    []models.ExpertExpertise{{PlatformID: 1, Rating: 4}},
		},
	}
}

func completeCustomerSnapshot() ProfileSnapshot {
	return ProfileSnapshot{
		User: models.User{
			FirstName: "Grace",
			LastName:  "Hopper",
			CountryID: uintRef(2),
			RoleID:    uintRef(2),
		},
		RoleName: models.RoleNameCustomer,
		Customer: &models.CustomerProfile{
			CompanyName: "Acme",
			JobTitle:    "CTO",
			Description: "We build things",
		},
	}
}

func TestEvaluateSnapshotEmptyAccount(t *testing.T) {
	t.Parallel()

	verdict := EvaluateSnapshot(ProfileSnapshot{})
	if verdict.Complete || verdict.BasicComplete || verdict.RoleComplete {
		t.Fatalf("empty account should be incomplete, got %+v", verdict)
	}
	if verdict.Role != RoleUnset {
		t.Fatalf("expected RoleUnset, got %v", verdict.Role)
	}
	wantMissing := []string{string(FieldName), string(FieldCountry), string(FieldRole)}
	if len(verdict.MissingFields) != len(wantMissing) {
		t.Fatalf("missing fields = %v, want %v", verdict.MissingFields, wantMissing)
	}
	for i, field := range wantMissing {
		if verdict.MissingFields[i] != field {
			t.Fatalf("missing fields = %v, want %v", verdict.MissingFields, wantMissing)
		}
	}
}

func TestEvaluateSnapshotWhitespaceNameIsBlank(t *testing.T) {
	t.Parallel()

	snapshot := completeExpertSnapshot()
	snapshot.User.FirstName = "   "
	verdict := EvaluateSnapshot(snapshot)
	if verdict.BasicComplete {
		t.Fatal("whitespace-only first name should fail the basic check")
	}
	if verdict.Complete {
		t.Fatal("profile with blank name must not be complete")
	}
}

func TestEvaluateSnapshotCompleteExpert(t *testing.T) {
	t.Parallel()

	verdict := EvaluateSnapshot(completeExpertSnapshot())
	if !verdict.BasicComplete || !verdict.RoleComplete || !verdict.Complete {
		t.Fatalf("expected complete expert, got %+v", verdict)
	}
	if len(verdict.MissingFields) != 0 {
		t.Fatalf("expected no missing fields, got %v", verdict.MissingFields)
	}
}

func TestEvaluateSnapshotExpertMissingRoleFields(t *testing.T) {
	t.Parallel()

	snapshot := completeExpertSnapshot()
	snapshot.Expert.Bio = ""
	snapshot.Expert.Skills = nil
	verdict := EvaluateSnapshot(snapshot)

	if !verdict.BasicComplete {
		t.Fatalf("basic part should still be complete, got %+v", verdict)
	}
	if verdict.RoleComplete || verdict.Complete {
		t.Fatalf("expert without bio and skills must be incomplete, got %+v", verdict)
	}

	missing := map[string]bool{}
	for _, field := range verdict.MissingFields {
		missing[field] = true
	}
	if !missing[string(FieldBio)] || !missing[string(FieldSkills)] {
		t.Fatalf("missing fields = %v, want bio and skills listed", verdict.MissingFields)
	}
}

func TestEvaluateSnapshotExpertWithoutProfileRow(t *testing.T) {
	t.Parallel()

	snapshot := completeExpertSnapshot()
	snapshot.Expert = nil
	verdict := EvaluateSnapshot(snapshot)
	if verdict.Complete {
		t.Fatal("expert with no profile row must be incomplete")
	}
	if len(verdict.MissingFields) != 5 {
		t.Fatalf("expected all five expert fields missing, got %v", verdict.MissingFields)
	}
}

func TestEvaluateSnapshotCompleteCustomer(t *testing.T) {
	t.Parallel()

	verdict := EvaluateSnapshot(completeCustomerSnapshot())
	if !verdict.Complete {
		t.Fatalf("expected complete customer, got %+v", verdict)
	}
}

func TestEvaluateSnapshotCustomerMissingCompany(t *testing.T) {
	t.Parallel()

	snapshot := completeCustomerSnapshot()
	snapshot.Customer.CompanyName = " "
	verdict := EvaluateSnapshot(snapshot)
	if verdict.Complete {
		t.Fatal("customer without company name must be incomplete")
	}
	if verdict.MissingFields[0] != string(FieldCompanyName) {
		t.Fatalf("missing fields = %v, want company name first", verdict.MissingFields)
	}
}

func TestEvaluateSnapshotAdminExempt(t *testing.T) {
	t.Parallel()

	verdict := EvaluateSnapshot(ProfileSnapshot{
		User:     models.User{RoleID: uintRef(3)},
		RoleName: models.RoleNameAdmin,
	})
	if !verdict.Complete || !verdict.BasicComplete || !verdict.RoleComplete {
		t.Fatalf("admin must be exempt from completion gating, got %+v", verdict)
	}
	if len(verdict.MissingFields) != 0 {
		t.Fatalf("admin verdict should list no missing fields, got %v", verdict.MissingFields)
	}
}

type stubProfileReader struct {
	snapshot ProfileSnapshot
	err      error
}

func (stub *stubProfileReader) LoadSnapshot(uint) (ProfileSnapshot, error) {
	return stub.snapshot, stub.err
}

func TestEvaluateSurfacesReadErrors(t *testing.T) {
	t.Parallel()

	readErr := errors.New("disk gone")
	evaluator := NewCompletenessEvaluator(&stubProfileReader{err: readErr})
	_, err := evaluator.Evaluate(1)
	if !errors.Is(err, readErr) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}

func TestEvaluateDelegatesToSnapshotRules(t *testing.T) {
	t.Parallel()

	evaluator := NewCompletenessEvaluator(&stubProfileReader{snapshot: completeExpertSnapshot()})
	verdict, err := evaluator.Evaluate(1)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !verdict.Complete {
		t.Fatalf("expected complete verdict, got %+v", verdict)
	}
}
