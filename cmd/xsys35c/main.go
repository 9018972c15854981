// Command xsys35c compiles System 3.x adventure-game scripts into one or
// more .ald archives of .sco bytecode pages (one per pragma ald_volume
// value in use), plus a System39.ain metadata file on System 3.9 builds
// only, matching xsys35c.c's driver: read the source list, preprocess
// every page, compile every page, then write the outputs.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/kichikuou-go/sys35c/ain"
	"github.com/kichikuou-go/sys35c/ald"
	"github.com/kichikuou-go/sys35c/compile"
	"github.com/kichikuou-go/sys35c/internal/sjiskana"
)

var (
	outDir          = flag.String("o", ".", "output directory")
	sysVer          = flag.Int("sys-ver", 38, "system version gate (35, 36, 38 or 39)")
	unicode         = flag.Bool("unicode", false, "emit the ZU 1: unicode-mode directive on page 0")
	disableAinMsg   = flag.Bool("disable-ain-msg", false, "keep messages inline instead of pooling them into the ain")
	disableAinVar   = flag.Bool("disable-ain-var", false, "omit the ain VARI section, and sort FUNC by (page,addr)")
	disableElse     = flag.Bool("disable-else", false, "disallow the System38+ else-branch syntax")
	oldSR           = flag.Bool("old-sr", false, "use the legacy SR command encoding")
	helDir          = flag.String("hel-dir", "", "directory to search for .hel DLL interface files")
)

func main() {
	flag.Parse()
	if err := run(flag.Args()); err != nil {
		glog.Exit(errors.Wrap(err, "xsys35c"))
	}
}

func run(srcListFiles []string) error {
	if len(srcListFiles) == 0 {
		return errors.New("usage: xsys35c [flags] srclist.cfg")
	}

	srcNames, variables, dllNames, err := readSourceList(srcListFiles[0])
	if err != nil {
		return err
	}
	if len(srcNames) == 0 {
		return errors.New("source list names no .adv pages")
	}

	cfg := compile.DefaultConfig()
	switch *sysVer {
	case 35:
		cfg.SysVer = compile.System35
		cfg.ScoVer = compile.SCOS350
	case 36:
		cfg.SysVer = compile.System36
		cfg.ScoVer = compile.SCOS360
	case 38:
		cfg.SysVer = compile.System38
		cfg.ScoVer = compile.SCOS380
	case 39:
		cfg.SysVer = compile.System39
		cfg.ScoVer = compile.SCOS380
	default:
		return errors.Errorf("unsupported -sys-ver %d", *sysVer)
	}
	cfg.Unicode = *unicode
	cfg.DisableAinMsg = *disableAinMsg
	cfg.DisableAinVar = *disableAinVar
	cfg.DisableElse = *disableElse
	cfg.OldSR = *oldSR

	codec := sjiskana.NewShiftJISCodec()
	c := compile.NewContext(cfg, codec, srcNames, variables)

	for _, dllName := range dllNames {
		dll, err := loadHEL(dllName)
		if err != nil {
			return err
		}
		c.Dlls = append(c.Dlls, dll)
	}

	srcTexts := make([]string, len(srcNames))
	for i, name := range srcNames {
		buf, err := os.ReadFile(name)
		if err != nil {
			return errors.Wrapf(err, "reading %s", name)
		}
		srcTexts[i] = string(buf)
	}

	glog.V(1).Info("pass 1: preprocessing")
	for i, text := range srcTexts {
		if err := c.Preprocess(text, i); err != nil {
			return errors.Wrapf(err, "preprocessing %s", srcNames[i])
		}
	}
	c.PreprocessDone()

	glog.V(1).Info("pass 2: compiling")
	entries := make([]*ald.Entry, len(srcTexts))
	for i, text := range srcTexts {
		sco, err := c.Compile(text, i)
		if err != nil {
			return errors.Wrapf(err, "compiling %s", srcNames[i])
		}
		entries[i] = &ald.Entry{
			Name:   scoEntryName(sco.SrcName),
			Data:   sco.Buf.Bytes(),
			Volume: sco.AldVolume,
		}
	}
	for _, w := range c.Warnings {
		glog.Warning(w)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	aldPaths, err := writeAldVolumes(entries, *outDir)
	if err != nil {
		return err
	}

	outPaths := aldPaths
	if cfg.SysVer == compile.System39 {
		ainPath := filepath.Join(*outDir, "System39.ain")
		ainFile, err := os.Create(ainPath)
		if err != nil {
			return errors.Wrap(err, "creating ain file")
		}
		defer ainFile.Close()
		if err := ain.Write(c, cfg.DisableAinVar, ainFile); err != nil {
			return errors.Wrap(err, "writing ain file")
		}
		outPaths = append(outPaths, ainPath)
	}

	glog.V(1).Infof("wrote %s (%d pages)", strings.Join(outPaths, ", "), len(entries))
	return nil
}

// writeAldVolumes writes one SACD.ALD-family file per distinct
// pragma-ald_volume value present among entries. A single-volume build
// (the common case) writes one SACD.ALD; a multi-volume build writes one
// file per volume, suffixed "_a", "_b", ... in volume order, matching the
// naming ald_test.c's own multi-volume fixtures use
// (actual_a.ald/actual_b.ald) — the retrieved xsys35c.c driver only ever
// builds a single volume, so this per-volume file-naming scheme has no
// original counterpart to port and is reconstructed here.
func writeAldVolumes(entries []*ald.Entry, outDir string) ([]string, error) {
	var volumes []uint8
	seen := make(map[uint8]bool)
	for _, e := range entries {
		if e == nil || seen[e.Volume] {
			continue
		}
		seen[e.Volume] = true
		volumes = append(volumes, e.Volume)
	}
	if len(volumes) == 0 {
		volumes = []uint8{1}
	}
	sort.Slice(volumes, func(i, j int) bool { return volumes[i] < volumes[j] })

	var paths []string
	for i, vol := range volumes {
		name := "SACD.ALD"
		if len(volumes) > 1 {
			name = fmt.Sprintf("SACD_%c.ALD", 'a'+i)
		}
		path := filepath.Join(outDir, name)
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrap(err, "creating ald archive")
		}
		err = ald.Write(entries, vol, f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "writing %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// scoEntryName strips the .adv extension and appends .sco, matching
// xsys35c's own output naming for the compiled bytecode archive entries.
func scoEntryName(srcName string) string {
	base := filepath.Base(srcName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".sco"
}

func loadHEL(name string) (*compile.DLL, error) {
	path := name
	if *helDir != "" {
		path = filepath.Join(*helDir, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	dll, err := compile.ParseHEL(strings.TrimSuffix(filepath.Base(name), ".hel"), string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return dll, nil
}

// readSourceList reads a sys35c.cfg-style config: one directive per line,
// either a bare .adv source name (appended in page order), a "-v name"
// variable declaration, or a "-hel name.hel" DLL interface reference,
// matching the reference compiler's argument-file convention (xsys35c.c's
// @response-file handling, simplified to a single line-oriented list).
func readSourceList(path string) (srcNames, variables, dlls []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "reading source list %s", path)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "-v":
			variables = append(variables, fields[1:]...)
		case "-hel":
			dlls = append(dlls, fields[1:]...)
		default:
			srcNames = append(srcNames, fields...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, nil, errors.Wrapf(err, "reading source list %s", path)
	}
	return srcNames, variables, dlls, nil
}
