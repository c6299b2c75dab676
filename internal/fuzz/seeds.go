package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".lt" {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

// addLanguageSeeds covers the syntax corners the testdata tree may miss.
func addLanguageSeeds(f *testing.F) {
	seeds := []string{
		"",
		"x = 1\n",
		"def inc(x) = x + 1\n",
		"r = xs |> map(?, double) |> list\n",
		"f = (a, b) -> a * b\n",
		"m = match v { 1 => \"one\", _ => \"many\" }\n",
		"s = f\"got {n!r:>8}\"\n",
		"add = (+)\nhalf = (/ 2)\n",
		"z = a `max` b\n",
		"def gen():\n    yield 1\n    yield 2\n",
		"async def fetch(url):\n    pass\n",
		"type Pair = tuple\n",
		"if (n := len(xs)) > 10: pass\n",
		"def f(a, *, key): pass\n",
		"x = ()[(())",
		"x = [1,\n     2)\n",
		"def f(:\n",
		"\tx = 1\n    y = 2\n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
