package main

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"avatarforge/internal/testsupport"
)

func TestBuildCommandWritesBundle(t *testing.T) {
	env := setupCLITestEnv(t)
	src := writeDocumentDir(t, env.baseDir, "mika")

	out, _, err := runCLI(t, env, "build", src)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	requireContains(t, out, "Bundle written to")

	for _, name := range []string{"avatar.json", "atlas.png", "report.md"} {
		if _, err := os.Stat(filepath.Join(env.outputDir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	out, _, err = runCLI(t, env, "jobs", "list")
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	requireContains(t, out, "build")
	requireContains(t, out, "completed")
}

func TestBuildCommandRecordsFailure(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "build", filepath.Join(env.baseDir, "missing")); err == nil {
		t.Fatal("expected error for missing source")
	}

	out, _, err := runCLI(t, env, "jobs", "list")
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	requireContains(t, out, "failed")
}

func TestScanCommandListsLayers(t *testing.T) {
	env := setupCLITestEnv(t)
	src := writeDocumentDir(t, env.baseDir, "mika")

	out, _, err := runCLI(t, env, "scan", src)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Mouth")
	requireContains(t, out, "REST")
	requireContains(t, out, "layers tagged")
	// Non-terminal output stays machine readable.
	if strings.Contains(out, "╭") {
		t.Error("expected plain output when stdout is not a terminal")
	}
}

func TestAnalyzeCommandSummarizes(t *testing.T) {
	env := setupCLITestEnv(t)
	src := writeDocumentDir(t, env.baseDir, "mika")

	out, _, err := runCLI(t, env, "analyze", src)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "Document: mika")
	requireContains(t, out, "Components:")
}

func TestGraphCommandFromBundle(t *testing.T) {
	env := setupCLITestEnv(t)
	src := writeDocumentDir(t, env.baseDir, "mika")

	if _, _, err := runCLI(t, env, "build", src); err != nil {
		t.Fatalf("build: %v", err)
	}

	bundlePath := filepath.Join(env.outputDir, "avatar.json")
	out, _, err := runCLI(t, env, "graph", bundlePath, "--preset", "idle-talk")
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	requireContains(t, out, "Graph written to")

	if _, err := os.Stat(filepath.Join(env.outputDir, "graph.idle-talk.json")); err != nil {
		t.Fatalf("missing graph file: %v", err)
	}

	if _, _, err := runCLI(t, env, "graph", bundlePath, "--preset", "nope"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestBatchCommandProcessesAll(t *testing.T) {
	env := setupCLITestEnv(t)
	root := filepath.Join(env.baseDir, "sources")
	writeDocumentDir(t, root, "chara_a")
	writeDocumentDir(t, root, "chara_b")

	out, _, err := runCLI(t, env, "batch", root, "-o", filepath.Join(env.baseDir, "batch-out"))
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	requireContains(t, out, "2 processed, 2 succeeded, 0 failed")

	for _, name := range []string{"chara_a", "chara_b"} {
		if _, err := os.Stat(filepath.Join(env.baseDir, "batch-out", name, "avatar.json")); err != nil {
			t.Errorf("missing bundle for %s: %v", name, err)
		}
	}
}

func TestLipsyncCommandFromText(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "lipsync", "me")
	if err != nil {
		t.Fatalf("lipsync: %v", err)
	}
	requireContains(t, out, "keyframes")
	requireContains(t, out, "MBP")

	if _, _, err := runCLI(t, env, "lipsync"); err == nil {
		t.Fatal("expected error without text or rhubarb input")
	}
}

func TestRulesInitCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "rules.json")

	out, _, err := runCLI(t, env, "rules", "init", target)
	if err != nil {
		t.Fatalf("rules init: %v", err)
	}
	requireContains(t, out, "Rules written to")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("missing rules file: %v", err)
	}
	if _, _, err := runCLI(t, env, "rules", "init", target); err == nil {
		t.Fatal("expected error for existing rules file without --overwrite")
	}
}

func TestScanCommandCanonicalizesSlotNames(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "doc")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.WritePNG(t, filepath.Join(dir, "rest.png"), 16, 8, color.RGBA{R: 255, A: 255})
	manifest := `{
  "name": "doc",
  "width": 64,
  "height": 64,
  "layers": [
    {"name": "rest shape [group=Face part=mouth viseme=REST]", "image": "rest.png"}
  ]
}`
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	out, _, err := runCLI(t, env, "scan", dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	// The displayed slot must match the aggregated slot, not the raw part.
	requireContains(t, out, "\tMouth\t")
	if strings.Contains(out, "\tmouth\t") {
		t.Errorf("lowercase part leaked into slot column:\n%s", out)
	}
}

func TestOptimizeCommandScalesIntoBox(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "portrait.png")
	testsupport.WritePNG(t, input, 800, 600, color.RGBA{B: 255, A: 255})

	out, _, err := runCLI(t, env, "optimize", input)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	requireContains(t, out, "Optimized image written to")

	target := filepath.Join(env.baseDir, "portrait.opt.png")
	file, err := os.Open(target)
	if err != nil {
		t.Fatalf("open optimized image: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decode optimized image: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 300 {
		t.Errorf("optimized size = %dx%d, want 400x300", img.Bounds().Dx(), img.Bounds().Dy())
	}

	if _, _, err := runCLI(t, env, "optimize", filepath.Join(env.baseDir, "absent.png")); err == nil {
		t.Fatal("expected error for missing input")
	}
}
