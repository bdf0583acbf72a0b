package compiler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/boundreal/internal/calc"
)

// LoadResult contains the programs compiled from a directory.
type LoadResult struct {
	Programs  []*calc.Program
	CUEValue  cue.Value // The raw CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// LoadDir loads the CUE package in dir and compiles its programs.
//
// Loading problems (missing directory, no files, CUE syntax or unification
// errors) return a nil result. Program compile errors are returned joined
// alongside a result holding every program that did compile.
func LoadDir(dir string) (*LoadResult, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &CompileError{Code: ErrCodeNotFound, Field: "dir", Message: fmt.Sprintf("programs directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &CompileError{Code: ErrCodeNotFound, Field: "dir", Message: fmt.Sprintf("error accessing programs directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &CompileError{Code: ErrCodeNotFound, Field: "dir", Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &CompileError{Code: ErrCodeScanError, Field: "dir", Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &CompileError{Code: ErrCodeNoFiles, Field: "dir", Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &CompileError{Code: ErrCodeLoadFailed, Field: "cue", Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &CompileError{Code: ErrCodeLoadFailed, Field: "cue", Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		var ce *CompileError
		if errors.As(formatCUEError(err), &ce) {
			ce.Code = ErrCodeBuildFailed
			return nil, ce
		}
		return nil, &CompileError{Code: ErrCodeBuildFailed, Field: "cue", Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	programs, err := CompilePrograms(value)
	return &LoadResult{
		Programs:  programs,
		CUEValue:  value,
		FileCount: len(files),
	}, err
}

// FindCUEFiles walks dir and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
