// Package target parses target dialect strings and gates recognized
// constructs against the feature table.
package target

import (
	"strconv"
	"strings"

	"lilt/internal/diag"
	"lilt/internal/feature"
	"lilt/internal/source"
)

// Target is a resolved dialect target. Family targets ("2", "3") pin
// the major version and take the newest known minor; "sys" resolves to
// the latest known version.
type Target struct {
	// Spec is the original target string as configured.
	Spec string
	// Version is the resolved concrete version gate checks run against.
	Version feature.Version
}

// Parse resolves a target string: exact ("3.6", "2.7"), family ("2",
// "3"), or "sys".
func Parse(spec string) (Target, *diag.Diagnostic) {
	switch spec {
	case "", "sys":
		return Target{Spec: "sys", Version: feature.Latest}, nil
	case "2":
		return Target{Spec: spec, Version: feature.Version{Major: 2, Minor: 7}}, nil
	case "3":
		return Target{Spec: spec, Version: feature.Latest}, nil
	}

	major, minor, ok := strings.Cut(spec, ".")
	if !ok {
		return Target{}, badTarget(spec)
	}
	maj, err := strconv.Atoi(major)
	if err != nil {
		return Target{}, badTarget(spec)
	}
	mnr, err := strconv.Atoi(minor)
	if err != nil {
		return Target{}, badTarget(spec)
	}
	if maj != 2 && maj != 3 {
		return Target{}, badTarget(spec)
	}
	return Target{Spec: spec, Version: feature.Version{Major: maj, Minor: mnr}}, nil
}

func badTarget(spec string) *diag.Diagnostic {
	return diag.NewError(diag.KindTarget, diag.TargetBadVersion, source.Span{},
		"unrecognized target version '"+spec+"'")
}

// Check gates a recognized construct. It is a pure function of
// (feature, target): the same recognition path runs at every target and
// the gate filters afterwards.
func Check(name feature.Name, tgt Target, span source.Span) *diag.Diagnostic {
	entry, ok := feature.Lookup(name)
	if !ok {
		return diag.NewError(diag.KindTarget, diag.TargetUnknownFeat, span,
			"unknown feature '"+string(name)+"'")
	}
	if tgt.Version.Before(entry.Min) {
		return diag.NewError(diag.KindTarget, diag.TargetTooOld, span,
			"'"+string(name)+"' requires target "+entry.Min.String()+
				" or newer (target is "+tgt.Spec+")")
	}
	if entry.Removed != nil && !tgt.Version.Before(*entry.Removed) {
		return diag.NewError(diag.KindTarget, diag.TargetRemoved, span,
			"'"+string(name)+"' was removed as of "+entry.Removed.String()+
				" (target is "+tgt.Spec+")")
	}
	return nil
}
