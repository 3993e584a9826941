package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"birthdayppt/birthday"
	"birthdayppt/config"
	"birthdayppt/deck"
	"birthdayppt/i18n"
	"birthdayppt/pptx"

	"github.com/google/uuid"
)

// BirthdayPPTService generates a month's birthday deck from a template file
// (or the bundled template) and saves it next to the other decks.
type BirthdayPPTService struct {
	templatePath string
	detailedLog  bool
	renderer     *SlideRenderer
	log          Logger
}

// NewBirthdayPPTService creates the service from the template, font and
// logging settings of cfg.
func NewBirthdayPPTService(cfg config.Config, log Logger) *BirthdayPPTService {
	return &BirthdayPPTService{
		templatePath: cfg.TemplatePath,
		detailedLog:  cfg.DetailedLog,
		renderer:     NewSlideRenderer(cfg.FontFamily, log),
		log:          log,
	}
}

func (s *BirthdayPPTService) logf(format string, args ...interface{}) {
	if s.log != nil {
		s.log.Logf(format, args...)
	}
}

// OutputName is the file name of the deck generated for month.
func OutputName(month int) string {
	return fmt.Sprintf("%d월_생일자.pptx", month)
}

// GeneratePPT renders the deck for month and people and saves it in saveDir.
// It returns the saved path. Nothing is written unless every step succeeds.
func (s *BirthdayPPTService) GeneratePPT(month int, people []birthday.Person, saveDir string) (string, error) {
	s.logf("%s", i18n.T("render.start", month, len(people), saveDir))

	if err := CheckSaveDir(saveDir); err != nil {
		return "", err
	}
	pkg, tmpl, err := s.LoadTemplate()
	if err != nil {
		return "", err
	}
	if s.detailedLog {
		s.logf("%s", InspectTemplate(tmpl))
	}

	out, err := s.renderer.Render(month, people, tmpl)
	if err != nil {
		return "", err
	}

	path := filepath.Join(saveDir, OutputName(month))
	if err := saveAtomic(pkg, out, path); err != nil {
		return "", newError(KindSave, StageSave, i18n.T("save.failed", err.Error()), err)
	}
	s.logf("%s", i18n.T("save.done", path))
	return path, nil
}

// LoadTemplate opens the configured template, or the bundled one when no
// path is configured, and checks it has a title and a person slide.
func (s *BirthdayPPTService) LoadTemplate() (*pptx.Package, deck.Deck, error) {
	var (
		pkg *pptx.Package
		err error
	)
	if s.templatePath == "" {
		data, buildErr := BuildDefaultTemplate()
		if buildErr != nil {
			return nil, deck.Deck{}, newError(KindTemplate, StageTemplate,
				i18n.T("render.template_unreadable", buildErr.Error()), buildErr)
		}
		pkg, err = pptx.OpenBytes(data)
	} else {
		if _, statErr := os.Stat(s.templatePath); statErr != nil {
			return nil, deck.Deck{}, newError(KindTemplate, StageTemplate,
				i18n.T("render.template_not_found", s.templatePath), statErr)
		}
		pkg, err = pptx.Open(s.templatePath)
	}
	if err != nil {
		return nil, deck.Deck{}, newError(KindTemplate, StageTemplate, i18n.T("render.template_unreadable", err.Error()), err)
	}

	d, err := pkg.Deck()
	if err != nil {
		return nil, deck.Deck{}, newError(KindTemplate, StageTemplate, i18n.T("render.template_unreadable", err.Error()), err)
	}
	if len(d.Slides) <= personSlideIndex {
		return nil, deck.Deck{}, newError(KindTemplate, StageTemplate, i18n.T("render.template_slides", len(d.Slides)), nil)
	}
	return pkg, d, nil
}

// CheckSaveDir reports whether dir exists, is a directory and accepts new
// files.
func CheckSaveDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return newError(KindSave, StageSave, i18n.T("save.path_not_found", dir), err)
	}
	if !info.IsDir() {
		return newError(KindSave, StageSave, i18n.T("save.not_directory", dir), nil)
	}
	probe, err := os.CreateTemp(dir, ".birthdayppt-probe-*")
	if err != nil {
		return newError(KindSave, StageSave, i18n.T("save.not_writable", dir), err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

// saveAtomic writes the deck to a temporary file beside path and renames it
// into place.
func saveAtomic(pkg *pptx.Package, d deck.Deck, path string) (err error) {
	tmp := filepath.Join(filepath.Dir(path), ".birthdayppt-"+uuid.NewString()+".tmp")
	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				err = errors.Join(err, rmErr)
			}
		}
	}()
	if err = pkg.SaveFile(tmp, d); err != nil {
		return err
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", filepath.Base(path), err)
	}
	return nil
}
