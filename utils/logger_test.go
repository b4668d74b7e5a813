/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerIsShared(t *testing.T) {
	if NewLogger("UTILS_TEST") != NewLogger("UTILS_TEST") {
		t.Fatalf("expected the registered logger to be reused")
	}
}

func TestNamedJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger("UTILS_JSON")
	lg.SetOutput(&buf)
	lg.SetFormatter(newFormatter("UTILS_JSON", "json"))
	lg.SetLevel(logrus.InfoLevel)

	lg.WithField("table", "users").Info("migrated")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if entry["logger"] != "UTILS_JSON" || entry["table"] != "users" || entry["msg"] != "migrated" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestTextOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger("UTILS_TEXT")
	lg.SetOutput(&buf)
	ConfigureLogLevel("warn")
	defer ConfigureLogLevel("info")
	if NewLogger("UTILS_LATER").GetLevel() != logrus.WarnLevel {
		t.Fatalf("loggers created later must take the configured level")
	}
	lg.Info("hidden")
	lg.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "logger=UTILS_TEXT") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"DEBUG":   logrus.DebugLevel,
		"warning": logrus.WarnLevel,
		"":        logrus.InfoLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("UTILS_INT", "12")
	t.Setenv("UTILS_BAD_INT", "x")
	t.Setenv("UTILS_BOOL", "true")
	t.Setenv("UTILS_BAD_BOOL", "yes please")
	if EnvDefaultInt("UTILS_INT", 1) != 12 || EnvDefaultInt("UTILS_BAD_INT", 1) != 1 {
		t.Fatalf("unexpected int defaults")
	}
	if !EnvDefaultBool("UTILS_BOOL", false) || !EnvDefaultBool("UTILS_BAD_BOOL", true) {
		t.Fatalf("unexpected bool defaults")
	}
	if EnvDefaultString("UTILS_UNSET", "d") != "d" {
		t.Fatalf("unexpected string default")
	}
}
