package validation_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"fjacquet/khoroch-khata/internal/parsererror"
	"fjacquet/khoroch-khata/internal/validation"
)

func paths(errs []parsererror.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Path)
	}
	return out
}

func TestHasProfilesList(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want bool
	}{
		{"list", `{"profiles":[]}`, true},
		{"list with whitespace", `{"profiles" :  [ ] }`, true},
		{"missing", `{"transactions":[]}`, false},
		{"object", `{"profiles":{}}`, false},
		{"null", `{"profiles":null}`, false},
		{"string", `{"profiles":"[]"}`, false},
		{"top-level array", `[{"profiles":[]}]`, false},
		{"not json", `profiles: []`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.HasProfilesList([]byte(tt.doc)))
		})
	}
}

func TestValidateDocument_AcceptsWellFormed(t *testing.T) {
	doc := `{
		"profiles": [
			{"id":"p1","name":"রিনা","avatar":"🙂","email":"rina@example.com","password":"secret1",
			 "color":"#6366f1","budgets":{"বাজার":1000,"খাদ্য":0}},
			{"id":"p2","name":"Karim","avatar":"","color":"#fff"}
		],
		"activeProfileId": "p1",
		"transactions": [
			{"id":"t1","profileId":"p1","type":"expense","category":"খাদ্য","amount":120.5,
			 "date":"2024-05-03","note":"চা ও নাস্তা","paymentMethod":"bKash"}
		],
		"reminders": [
			{"id":"r1","profileId":"p1","task":"বিল দিন","date":"2024-05-10","remindTime":"09:30","isCompleted":false},
			{"id":"r2","profileId":"p1","task":"no time","date":"2024-05-11","isCompleted":true}
		],
		"notificationSettings": {"enableDailySummary":true,"enableBudgetAlerts":false,"enableReminders":true,"sounds":{}},
		"categories": {"income":[{"name":"বেতন","icon":"fa-briefcase"}],"expense":[{"name":"খাদ্য","icon":"fa-utensils"}]},
		"theme": "light",
		"accentColor": "99, 102, 241",
		"currency": {"symbol":"৳","position":"suffix"}
	}`
	assert.Empty(t, validation.ValidateDocument([]byte(doc)))
}

func TestValidateDocument_AcceptsMinimal(t *testing.T) {
	assert.Empty(t, validation.ValidateDocument([]byte(`{"profiles":[]}`)))
	assert.Empty(t, validation.ValidateDocument([]byte(`{"profiles":[],"transactions":null,"currency":null}`)))
}

func TestValidateDocument_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{"not json", `{`, "$"},
		{"array root", `[]`, "$"},
		{"missing profiles", `{}`, "profiles"},
		{"profile not object", `{"profiles":[1]}`, "profiles[0]"},
		{"profile id missing", `{"profiles":[{"name":"a"}]}`, "profiles[0].id"},
		{"duplicate profile id", `{"profiles":[{"id":"a","name":"x"},{"id":"a","name":"y"}]}`, "profiles[1].id"},
		{"budget not number", `{"profiles":[{"id":"a","name":"x","budgets":{"বাজার":"lots"}}]}`, `profiles[0].budgets["বাজার"]`},
		{"transactions not list", `{"profiles":[],"transactions":{}}`, "transactions"},
		{"bad type", `{"profiles":[],"transactions":[{"id":"t","profileId":"p","type":"transfer","category":"c","amount":1,"date":"2024-01-01"}]}`, "transactions[0].type"},
		{"negative amount", `{"profiles":[],"transactions":[{"id":"t","profileId":"p","type":"expense","category":"c","amount":-1,"date":"2024-01-01"}]}`, "transactions[0].amount"},
		{"string amount", `{"profiles":[],"transactions":[{"id":"t","profileId":"p","type":"expense","category":"c","amount":"1","date":"2024-01-01"}]}`, "transactions[0].amount"},
		{"bad date", `{"profiles":[],"transactions":[{"id":"t","profileId":"p","type":"expense","category":"c","amount":1,"date":"yesterday"}]}`, "transactions[0].date"},
		{"bad payment method", `{"profiles":[],"transactions":[{"id":"t","profileId":"p","type":"income","category":"c","amount":1,"date":"2024-01-01","paymentMethod":"Cheque"}]}`, "transactions[0].paymentMethod"},
		{"bad remind time", `{"profiles":[],"reminders":[{"id":"r","profileId":"p","task":"x","date":"2024-01-01","remindTime":"25:00"}]}`, "reminders[0].remindTime"},
		{"completed not bool", `{"profiles":[],"reminders":[{"id":"r","profileId":"p","date":"2024-01-01","isCompleted":"yes"}]}`, "reminders[0].isCompleted"},
		{"bad toggle", `{"profiles":[],"notificationSettings":{"enableReminders":1}}`, "notificationSettings.enableReminders"},
		{"category without name", `{"profiles":[],"categories":{"expense":[{"icon":"fa-tag"}]}}`, "categories.expense[0].name"},
		{"bad theme", `{"profiles":[],"theme":"blue"}`, "theme"},
		{"bad position", `{"profiles":[],"currency":{"symbol":"$","position":"middle"}}`, "currency.position"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.ValidateDocument([]byte(tt.doc))
			assert.Contains(t, paths(errs), tt.wantPath)
		})
	}
}

func TestValidateDocument_ReportsEveryField(t *testing.T) {
	doc := `{"profiles":[{"id":1}],"theme":"blue","currency":{"position":"middle"}}`
	errs := validation.ValidateDocument([]byte(doc))
	assert.ElementsMatch(t,
		[]string{"profiles[0].id", "profiles[0].name", "theme", "currency.position"},
		paths(errs))
}

func TestIsValidFilePermissions(t *testing.T) {
	assert.NoError(t, validation.IsValidFilePermissions(os.FileMode(0600)))
	assert.NoError(t, validation.IsValidFilePermissions(os.FileMode(0640)))
	assert.Error(t, validation.IsValidFilePermissions(os.FileMode(0644)))
	assert.Error(t, validation.IsValidFilePermissions(os.FileMode(0777)))
}
