package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tiseno100/chipset-reversing/emu"
	"github.com/tiseno100/chipset-reversing/hw/snapshot"
)

func bufferOut(buf *bytes.Buffer) *outfile {
	return &outfile{w: buf, name: "buffer", close: func() error { return nil }}
}

func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunMainKeepsScriptOrder(t *testing.T) {
	dir := t.TempDir()
	scripts := []string{
		writeScript(t, dir, "cache.lua", `pciw("nb", 0, 0x42, 1)`),
		writeScript(t, dir, "a20.lua", `pciw("sb", 0, 0x43, 0x80)`),
		writeScript(t, dir, "idle.lua", `log("nothing")`),
	}

	var buf bytes.Buffer
	runMain(Run{Chipset: "ali-aladdin-iii", Scripts: scripts, JSON: true, Out: bufferOut(&buf)}, emu.DefaultConfig())

	var got []struct {
		Script string `json:"script"`
		State  struct {
			Port92        bool `json:"port92"`
			ExternalCache bool `json:"external_cache"`
		} `json:"state"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}

	type row struct {
		Script                string
		Port92, ExternalCache bool
	}
	want := []row{
		{scripts[0], false, true},
		{scripts[1], true, false},
		{scripts[2], false, false},
	}
	var rows []row
	for _, r := range got {
		rows = append(rows, row{r.Script, r.State.Port92, r.State.ExternalCache})
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteResultsText(t *testing.T) {
	results := []result{
		{script: "b.lua", state: snapshot.Machine{Chipset: snapshot.Chipset{Name: "w8375x", Model: "Winbond"}}},
		{script: "a.lua", state: snapshot.Machine{Chipset: snapshot.Chipset{Name: "mic-471", Model: "Micronics"}}},
	}

	var buf bytes.Buffer
	if err := writeResults(&buf, results, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	var idx []int
	for _, s := range []string{"== b.lua ==\nWinbond (w8375x)\n", "== a.lua ==\nMicronics (mic-471)\n"} {
		i := strings.Index(out, s)
		if i < 0 {
			t.Fatalf("output does not contain %q:\n%s", s, out)
		}
		idx = append(idx, i)
	}
	if idx[0] > idx[1] {
		t.Errorf("results written out of order:\n%s", out)
	}
}

func TestWriteResultsNoScript(t *testing.T) {
	results := []result{{state: snapshot.Machine{Chipset: snapshot.Chipset{Name: "w8375x", Model: "Winbond"}}}}

	var buf bytes.Buffer
	if err := writeResults(&buf, results, false); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); strings.Contains(out, "==") || !strings.HasPrefix(out, "Winbond (w8375x)\n") {
		t.Errorf("state after reset has unexpected header:\n%s", out)
	}
}
