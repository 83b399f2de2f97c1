// Package validation checks an incoming state document against the full
// document shape before it is allowed to replace the current state.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"fjacquet/khoroch-khata/internal/dateutils"
	"fjacquet/khoroch-khata/internal/models"
	"fjacquet/khoroch-khata/internal/parsererror"
)

type object = map[string]any

// HasProfilesList reports whether the document is a JSON object with a
// "profiles" member that is a list. This is the minimum any imported
// document must satisfy.
func HasProfilesList(data []byte) bool {
	var probe struct {
		Profiles json.RawMessage `json:"profiles"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	trimmed := bytes.TrimSpace(probe.Profiles)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ValidateDocument checks every member present in data against the state
// document shape. Members that are absent or null are allowed and later
// filled from defaults; members that are present must be well formed.
// An empty result means the document is acceptable.
func ValidateDocument(data []byte) []parsererror.FieldError {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return []parsererror.FieldError{{Path: "$", Reason: "not valid JSON: " + err.Error()}}
	}
	doc, ok := root.(object)
	if !ok {
		return []parsererror.FieldError{{Path: "$", Reason: "must be a JSON object"}}
	}

	v := &validator{}
	v.profiles(doc)
	v.optionalString(doc, "activeProfileId", "activeProfileId")
	v.transactions(doc)
	v.reminders(doc)
	v.notificationSettings(doc)
	v.categories(doc)
	v.enum(doc, "theme", "theme", models.ThemeDark, models.ThemeLight)
	v.optionalString(doc, "accentColor", "accentColor")
	v.currency(doc)
	return v.errs
}

type validator struct {
	errs []parsererror.FieldError
}

func (v *validator) fail(path, format string, args ...any) {
	v.errs = append(v.errs, parsererror.FieldError{Path: path, Reason: fmt.Sprintf(format, args...)})
}

func (v *validator) profiles(doc object) {
	raw, present := doc["profiles"]
	list, ok := raw.([]any)
	if !present || !ok {
		v.fail("profiles", "required list")
		return
	}
	seen := make(map[string]bool, len(list))
	for i, item := range list {
		path := fmt.Sprintf("profiles[%d]", i)
		p, ok := v.asObject(item, path)
		if !ok {
			continue
		}
		if id, ok := v.requiredString(p, "id", path+".id"); ok {
			if seen[id] {
				v.fail(path+".id", "duplicate profile id %q", id)
			}
			seen[id] = true
		}
		v.requiredString(p, "name", path+".name")
		for _, key := range []string{"avatar", "email", "password", "image", "color"} {
			v.optionalString(p, key, path+"."+key)
		}
		if budgets, ok := p["budgets"].(object); ok {
			for cat, limit := range budgets {
				v.number(limit, fmt.Sprintf("%s.budgets[%q]", path, cat), false)
			}
		} else if p["budgets"] != nil {
			v.fail(path+".budgets", "must be an object of category to amount")
		}
	}
}

func (v *validator) transactions(doc object) {
	list, ok := v.optionalList(doc, "transactions")
	if !ok {
		return
	}
	for i, item := range list {
		path := fmt.Sprintf("transactions[%d]", i)
		t, ok := v.asObject(item, path)
		if !ok {
			continue
		}
		v.requiredString(t, "id", path+".id")
		v.requiredString(t, "profileId", path+".profileId")
		if _, present := t["type"]; !present {
			v.fail(path+".type", "required")
		} else {
			v.enum(t, "type", path+".type", string(models.TypeIncome), string(models.TypeExpense))
		}
		v.requiredString(t, "category", path+".category")
		if amount, present := t["amount"]; present {
			v.number(amount, path+".amount", true)
		} else {
			v.fail(path+".amount", "required")
		}
		v.date(t, "date", path+".date", true)
		v.optionalString(t, "note", path+".note")
		methods := make([]string, 0, len(models.PaymentMethods))
		for _, m := range models.PaymentMethods {
			methods = append(methods, string(m))
		}
		v.enum(t, "paymentMethod", path+".paymentMethod", methods...)
	}
}

func (v *validator) reminders(doc object) {
	list, ok := v.optionalList(doc, "reminders")
	if !ok {
		return
	}
	for i, item := range list {
		path := fmt.Sprintf("reminders[%d]", i)
		r, ok := v.asObject(item, path)
		if !ok {
			continue
		}
		v.requiredString(r, "id", path+".id")
		v.requiredString(r, "profileId", path+".profileId")
		v.optionalString(r, "task", path+".task")
		v.date(r, "date", path+".date", true)
		if s, ok := v.optionalString(r, "remindTime", path+".remindTime"); ok && s != "" && !dateutils.IsClock(s) {
			v.fail(path+".remindTime", "must be HH:mm, got %q", s)
		}
		v.optionalBool(r, "isCompleted", path+".isCompleted")
	}
}

func (v *validator) notificationSettings(doc object) {
	ns, ok := v.optionalObject(doc, "notificationSettings", "notificationSettings")
	if !ok {
		return
	}
	for _, key := range []string{"enableDailySummary", "enableBudgetAlerts", "enableReminders"} {
		v.optionalBool(ns, key, "notificationSettings."+key)
	}
	if sounds, ok := v.optionalObject(ns, "sounds", "notificationSettings.sounds"); ok {
		for _, key := range []string{"reminder", "budget", "system"} {
			v.optionalString(sounds, key, "notificationSettings.sounds."+key)
		}
	}
}

func (v *validator) categories(doc object) {
	cats, ok := v.optionalObject(doc, "categories", "categories")
	if !ok {
		return
	}
	for _, kind := range []string{"income", "expense"} {
		list, ok := v.optionalList(cats, kind)
		if !ok {
			continue
		}
		for i, item := range list {
			path := fmt.Sprintf("categories.%s[%d]", kind, i)
			c, ok := v.asObject(item, path)
			if !ok {
				continue
			}
			v.requiredString(c, "name", path+".name")
			v.optionalString(c, "icon", path+".icon")
		}
	}
}

func (v *validator) currency(doc object) {
	c, ok := v.optionalObject(doc, "currency", "currency")
	if !ok {
		return
	}
	v.optionalString(c, "symbol", "currency.symbol")
	v.enum(c, "position", "currency.position", string(models.PositionPrefix), string(models.PositionSuffix))
}

func (v *validator) asObject(item any, path string) (object, bool) {
	o, ok := item.(object)
	if !ok {
		v.fail(path, "must be an object")
	}
	return o, ok
}

func (v *validator) optionalList(o object, key string) ([]any, bool) {
	raw, present := o[key]
	if !present || raw == nil {
		return nil, false
	}
	list, ok := raw.([]any)
	if !ok {
		v.fail(key, "must be a list")
	}
	return list, ok
}

func (v *validator) optionalObject(o object, key, path string) (object, bool) {
	raw, present := o[key]
	if !present || raw == nil {
		return nil, false
	}
	obj, ok := raw.(object)
	if !ok {
		v.fail(path, "must be an object")
	}
	return obj, ok
}

func (v *validator) requiredString(o object, key, path string) (string, bool) {
	raw, present := o[key]
	if !present || raw == nil {
		v.fail(path, "required")
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		v.fail(path, "must be a string")
		return "", false
	}
	if s == "" && (key == "id" || key == "profileId") {
		v.fail(path, "must not be empty")
		return "", false
	}
	return s, true
}

func (v *validator) optionalString(o object, key, path string) (string, bool) {
	raw, present := o[key]
	if !present || raw == nil {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		v.fail(path, "must be a string")
	}
	return s, ok
}

func (v *validator) optionalBool(o object, key, path string) {
	raw, present := o[key]
	if !present || raw == nil {
		return
	}
	if _, ok := raw.(bool); !ok {
		v.fail(path, "must be a boolean")
	}
}

func (v *validator) enum(o object, key, path string, allowed ...string) {
	s, ok := v.optionalString(o, key, path)
	if !ok {
		return
	}
	for _, a := range allowed {
		if s == a {
			return
		}
	}
	v.fail(path, "must be one of %q, got %q", allowed, s)
}

func (v *validator) number(raw any, path string, nonNegative bool) {
	n, ok := raw.(json.Number)
	if !ok {
		v.fail(path, "must be a number")
		return
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		v.fail(path, "must be a number: %v", err)
		return
	}
	if nonNegative && d.IsNegative() {
		v.fail(path, "must not be negative")
	}
}

func (v *validator) date(o object, key, path string, required bool) {
	s, ok := v.optionalString(o, key, path)
	if !ok {
		if _, present := o[key]; required && !present {
			v.fail(path, "required")
		}
		return
	}
	if _, err := dateutils.Parse(s); err != nil {
		v.fail(path, "must be a calendar date: %v", err)
	}
}

// IsValidFilePermissions checks that a data file is not readable by others.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600", mode.String())
	}
	return nil
}
