// Package fuzztests houses Go fuzz harnesses that exercise the front of
// the compile pipeline (source -> scanner -> grammar). Its goal is to
// smoke test robustness and guard against panics on arbitrary inputs.
package fuzztests
