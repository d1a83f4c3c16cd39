// anim2ozz imports animation clips from a source asset and converts
// them to tagged binary raw or runtime animation archives, driven by a
// JSON configuration document and a skeleton file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/neonkore/OZZAnimC/internal/config"
	"github.com/neonkore/OZZAnimC/internal/converter"
	"github.com/neonkore/OZZAnimC/internal/importer"
	"github.com/neonkore/OZZAnimC/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("anim2ozz", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	filePtr := fs.String("file", "", "Specifies input file")
	skeletonPtr := fs.String("skeleton", "", "Specifies skeleton (raw or runtime) input file")
	configStringPtr := fs.String("config_string", "{}", "Specifies input configuration string")
	configFilePtr := fs.String("config_file", "", "Specifies input configuration file (.json, .yaml or .yml); overrides -config_string")
	endianPtr := fs.String("endian", "native", "Selects output endianness mode: \"native\" (same as current platform), \"little\" or \"big\"")
	logLevelPtr := fs.String("log_level", "standard", "Selects log level: \"silent\", \"standard\" or \"verbose\"")
	samplingRatePtr := fs.Float64("sampling_rate", 0, "Selects animation sampling rate in hertz; 0 uses the imported scene frame rate")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// An explicit help request is a successful exit.
			return 0
		}
		return 1
	}

	cfg := &config.Config{
		InputPath:    *filePtr,
		SkeletonPath: *skeletonPtr,
		ConfigString: *configStringPtr,
		ConfigFile:   *configFilePtr,
		Endian:       *endianPtr,
		LogLevel:     *logLevelPtr,
		SamplingRate: *samplingRatePtr,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "anim2ozz: %v\n", err)
		fs.Usage()
		return 1
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "anim2ozz: %v\n", err)
		return 1
	}
	log := logger.New(level, os.Stderr)

	// The importer is picked from the input extension: JSON clip
	// documents, otherwise a tagged binary animation archive.
	var imp importer.Importer
	if strings.EqualFold(filepath.Ext(cfg.InputPath), ".json") {
		imp = importer.JSONImporter{}
	} else {
		imp = importer.ArchiveImporter{}
	}

	conv := converter.New(cfg, imp, log)
	if err := conv.Run(); err != nil {
		log.Error("conversion failed", "err", err)
		return 1
	}
	return 0
}
