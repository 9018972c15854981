// Command xsys35dc decompiles a System 3.x .ald archive (plus its
// System39.ain metadata, if present) back into per-page source text and an
// xsys35dc.hed source list, matching xsys35dc.c's driver.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/kichikuou-go/sys35c/ain"
	"github.com/kichikuou-go/sys35c/ald"
	"github.com/kichikuou-go/sys35c/decompile"
)

var (
	outDir  = flag.String("o", ".", "output directory")
	ainPath = flag.String("ain", "", "path to the System39.ain metadata file (defaults to System39.ain next to the archive)")
)

func main() {
	flag.Parse()
	if err := run(flag.Args()); err != nil {
		glog.Exit(errors.Wrap(err, "xsys35dc"))
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: xsys35dc [flags] archive.ald")
	}
	aldPath := args[0]

	entries, err := readAld(aldPath)
	if err != nil {
		return err
	}

	var ainData *ain.Ain
	ainFile := *ainPath
	if ainFile == "" {
		ainFile = filepath.Join(filepath.Dir(aldPath), "System39.ain")
	}
	if buf, err := os.ReadFile(ainFile); err == nil {
		ainData, err = ain.Read(buf)
		if err != nil {
			return errors.Wrapf(err, "parsing %s", ainFile)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "reading %s", ainFile)
	} else {
		glog.V(1).Infof("no ain metadata found at %s, decompiling without it", ainFile)
	}

	scos := make([]*decompile.Sco, len(entries))
	for i, e := range entries {
		if e == nil {
			continue
		}
		sco, err := decompile.NewSco(e.Name, e.Data)
		if err != nil {
			return errors.Wrapf(err, "parsing sco entry %d", i)
		}
		scos[i] = sco
	}

	decompile.Preprocess(scos, ainData)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	for page, sco := range scos {
		if sco == nil {
			continue
		}
		text, err := decompile.DecompileSco(scos, page)
		if err != nil {
			return errors.Wrapf(err, "decompiling page %d (%s)", page, sco.SrcName)
		}
		outPath := filepath.Join(*outDir, outputName(sco.SrcName))
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", outPath)
		}
		glog.V(1).Infof("wrote %s", outPath)
	}

	hedPath := filepath.Join(*outDir, "xsys35dc.hed")
	if err := os.WriteFile(hedPath, []byte(decompile.WriteHed(scos)), 0o644); err != nil {
		return errors.Wrap(err, "writing xsys35dc.hed")
	}
	glog.V(1).Infof("wrote %s", hedPath)
	return nil
}

func readAld(path string) ([]*ald.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	entries, err := ald.Read(f, fi.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return entries, nil
}

// outputName restores a .adv source file name from a compiled .sco archive
// entry name, the inverse of xsys35c's scoEntryName.
func outputName(scoName string) string {
	base := strings.TrimSuffix(filepath.Base(scoName), ".sco")
	return fmt.Sprintf("%s.adv", base)
}
