package services

import (
	"strings"

	"github.com/ochairo/ocrboot/internal/domain/entities"
)

// TemplateVars holds the values substituted into descriptor fields
type TemplateVars struct {
	Root   string // Project directory holding requirements.txt and the program
	Tools  string // Directory archives are extracted into
	Venv   string // Virtual environment directory
	Python string // Python interpreter used to create the venv
	Exe    string // Executable suffix, ".exe" on Windows
}

// Expand performs placeholder substitution on a single value
func (v TemplateVars) Expand(s, version string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	r := strings.NewReplacer(
		"{version}", version,
		"{root}", v.Root,
		"{tools}", v.Tools,
		"{venv}", v.Venv,
		"{python}", v.Python,
		"{exe}", v.Exe,
	)
	return r.Replace(s)
}

func (v TemplateVars) expandAll(in []string, version string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = v.Expand(s, version)
	}
	return out
}

// ExpandDescriptor returns a copy of desc with every placeholder resolved
func ExpandDescriptor(desc entities.Descriptor, vars TemplateVars) entities.Descriptor {
	ver := desc.Version
	out := desc

	out.Detect.Path = vars.Expand(desc.Detect.Path, ver)
	out.Detect.Command = vars.Expand(desc.Detect.Command, ver)

	out.Install.URL = vars.Expand(desc.Install.URL, ver)
	out.Install.SignatureURL = vars.Expand(desc.Install.SignatureURL, ver)
	out.Install.GPGKeysURL = vars.Expand(desc.Install.GPGKeysURL, ver)
	out.Install.GPGKeyFile = vars.Expand(desc.Install.GPGKeyFile, ver)
	out.Install.Destination = vars.Expand(desc.Install.Destination, ver)
	out.Install.Command = vars.expandAll(desc.Install.Command, ver)
	out.Install.Script = vars.Expand(desc.Install.Script, ver)
	out.Install.Args = vars.expandAll(desc.Install.Args, ver)
	out.Install.Stamp = vars.Expand(desc.Install.Stamp, ver)

	out.PathDir = vars.Expand(desc.PathDir, ver)

	out.Smoke.Command = vars.Expand(desc.Smoke.Command, ver)
	out.Smoke.Args = vars.expandAll(desc.Smoke.Args, ver)
	out.Smoke.Expect = vars.Expand(desc.Smoke.Expect, ver)

	return out
}
