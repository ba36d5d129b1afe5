package main

import "testing"

func TestLdflagsDefaults(t *testing.T) {
	for name, v := range map[string]string{
		"version": version, "commit": commit, "date": date, "goVersion": goVersion,
	} {
		if v == "" {
			t.Errorf("%s must have a non-empty default for plain go build", name)
		}
	}
}
