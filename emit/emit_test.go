package emit

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pulsedrive/calres/axis"
	"github.com/pulsedrive/calres/caltab"
)

func testTable(t *testing.T) *caltab.Table {
	t.Helper()
	tab, err := caltab.NewTable(
		caltab.Binding{
			Name: "PWM_MIN_ON_TIME", Kind: caltab.U16, Unit: "ns",
			Origin: "gate-ic-type", PerTarget: true,
			Values: []caltab.Value{
				caltab.UintValue(caltab.U16, 300),
				caltab.UintValue(caltab.U16, 300),
			},
		},
		caltab.Binding{
			Name: "MOT_CUR_SCALE", Kind: caltab.F32, Unit: "A/LSB",
			Origin: "current_sensor_scale", Derived: true,
			Values: []caltab.Value{caltab.FloatValue(0.24414)},
		},
		caltab.Binding{
			Name: "RDC_K1_GAIN", Kind: caltab.I32,
			Origin: "fixed_point", Derived: true,
			Values: []caltab.Value{caltab.IntValue(caltab.I32, 4702373)},
		},
		caltab.Binding{
			Name: "SQPWM_REGEN_DISABLE", Kind: caltab.Bool,
			Origin: "sqpwm-regen-mode",
			Values: []caltab.Value{caltab.BoolValue(true)},
		},
	)
	require.NoError(t, err)
	return tab
}

func testInfo() Info {
	return Info{
		Tool:    "calres",
		Version: "1.2.0",
		Source:  "embedded",
		RunID:   "3f1c9a6e-0000-0000-0000-000000000000",
		Date:    time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		Context: caltab.Context{axis.GateIC: "type7"},
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, "inv_cal_const", testTable(t), testInfo()))
	out := buf.String()

	assert.Contains(t, out, "#ifndef INV_CAL_CONST_H")
	assert.Contains(t, out, "#define INV_CAL_CONST_H")
	assert.Contains(t, out, `#include "platform_types.h"`)
	assert.Contains(t, out, "extern const UINT16 PWM_MIN_ON_TIME[2];")
	assert.Contains(t, out, "extern const FLOAT32 MOT_CUR_SCALE;")
	assert.Contains(t, out, "extern const INT32 RDC_K1_GAIN;")
	assert.Contains(t, out, "extern const BOOL SQPWM_REGEN_DISABLE;")
	assert.Contains(t, out, "#endif /* INV_CAL_CONST_H */")
	assert.Contains(t, out, "Run:     3f1c9a6e")
	assert.Contains(t, out, "Do not edit")
}

func TestWriteSource(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSource(&buf, "inv_cal_const", testTable(t), testInfo()))
	out := buf.String()

	assert.Contains(t, out, `#include "inv_cal_const.h"`)
	assert.Contains(t, out, "/* gate-ic-type */")
	assert.Contains(t, out, "const UINT16 PWM_MIN_ON_TIME[2] =")
	assert.Contains(t, out, "300U,  /* MOT */")
	assert.Contains(t, out, "300U  /* HSG */")
	assert.Contains(t, out, "const FLOAT32 MOT_CUR_SCALE = 0.24414f;  /* A/LSB */")
	assert.Contains(t, out, "const INT32 RDC_K1_GAIN = 4702373;")
	assert.Contains(t, out, "const BOOL SQPWM_REGEN_DISABLE = TRUE;")
}

func TestCValue(t *testing.T) {
	tests := []struct {
		name string
		v    caltab.Value
		want string
	}{
		{"unsigned", caltab.UintValue(caltab.U32, 125000), "125000U"},
		{"signed", caltab.IntValue(caltab.I16, -42), "-42"},
		{"float", caltab.FloatValue(0.24414), "0.24414f"},
		{"whole float keeps a point", caltab.FloatValue(400), "400.0f"},
		{"flag set", caltab.BoolValue(true), "TRUE"},
		{"flag clear", caltab.BoolValue(false), "FALSE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cValue(tt.v))
		})
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, testTable(t), testInfo()))

	var report struct {
		Generator struct {
			Tool string `yaml:"tool"`
			Run  string `yaml:"run"`
		} `yaml:"generator"`
		Context   map[string]string `yaml:"context"`
		Constants []struct {
			Name   string            `yaml:"name"`
			Type   string            `yaml:"type"`
			Value  string            `yaml:"value"`
			Values map[string]string `yaml:"values"`
		} `yaml:"constants"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, "calres", report.Generator.Tool)
	assert.Equal(t, "type7", report.Context["gate-ic-type"])
	require.Len(t, report.Constants, 4)
	assert.Equal(t, "PWM_MIN_ON_TIME", report.Constants[0].Name)
	assert.Equal(t, "300", report.Constants[0].Values["MOT"])
	assert.Equal(t, "0.24414", report.Constants[1].Value)
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteFiles(dir, "inv_cal_const", []string{FormatC, FormatYAML}, testTable(t), testInfo())
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, want := range []string{"inv_cal_const.h", "inv_cal_const.c", "inv_cal_const.yaml"} {
		raw, err := os.ReadFile(filepath.Join(dir, want))
		require.NoError(t, err)
		assert.NotEmpty(t, raw)
	}

	t.Run("unknown format", func(t *testing.T) {
		_, err := WriteFiles(dir, "x", []string{"xml"}, testTable(t), testInfo())
		assert.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "xml"))
	})
}
