package services

import "testing"

func TestQuickHelpOptions(t *testing.T) {
	svc := NewHelpService(nil)
	options := svc.QuickHelp()

	if len(options) != 6 {
		t.Fatalf("options = %d, want 6", len(options))
	}
	if options[0].Title != "Call Support" || options[0].Action != "tel:+9118001234567" {
		t.Errorf("unexpected first option %+v", options[0])
	}
	if options[1].Action != "mailto:support@cropcare-ai.com" {
		t.Errorf("unexpected email action %q", options[1].Action)
	}
	for i, o := range options {
		if o.Title == "" || o.Description == "" || o.Action == "" {
			t.Errorf("option %d has empty fields: %+v", i, o)
		}
	}
}
