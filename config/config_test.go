package config

import (
	"strings"
	"testing"
)

func TestValidate_ListsEveryMissingField(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("empty config validated")
	}
	for _, key := range []string{"RAZORPAY_KEY_ID", "RAZORPAY_KEY_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not name %s", err.Error(), key)
		}
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{RazorpayKeyID: "rzp_test", RazorpayKeySecret: "secret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsProduction(t *testing.T) {
	if (&Config{Mode: "development"}).IsProduction() {
		t.Error("development reported as production")
	}
	if !(&Config{Mode: "production"}).IsProduction() {
		t.Error("production not reported as production")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://ssplt10.cloud , https://www.ssplt10.cloud ,")
	if len(got) != 2 || got[0] != "https://ssplt10.cloud" || got[1] != "https://www.ssplt10.cloud" {
		t.Errorf("splitList = %v", got)
	}
	if splitList("") != nil {
		t.Error("empty input should yield nil")
	}
}
