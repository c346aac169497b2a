package store

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/core"
	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/schema"
)

// buildWorkbook serializes a dataset into an in-memory xlsx workbook with
// one sheet per table, in canonical order.
func buildWorkbook(d *core.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()
	rendered := schema.Render(d)
	for _, name := range schema.SheetNames {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
		sheet := rendered[name]
		if err := writeRow(f, name, 1, sheet.Header); err != nil {
			return nil, err
		}
		for i, row := range sheet.Rows {
			if err := writeRow(f, name, i+2, row); err != nil {
				return nil, err
			}
		}
	}
	// Drop the workbook's implicit default sheet and land on the ledger.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(schema.SheetLedger); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	ref, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row reference %s!%d: %w", sheet, rowNum, err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, ref, &values); err != nil {
		return fmt.Errorf("write row %s!%d: %w", sheet, rowNum, err)
	}
	return nil
}

// readSheets extracts the raw form of every known section. Sections that
// are missing from the workbook are simply absent from the result; the
// normalizer recreates them.
func readSheets(f *excelize.File) map[string]*schema.Sheet {
	out := make(map[string]*schema.Sheet, len(schema.SheetNames))
	for _, name := range schema.SheetNames {
		idx, err := f.GetSheetIndex(name)
		if err != nil || idx < 0 {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		s := &schema.Sheet{Name: name}
		if len(rows) > 0 {
			s.Header = rows[0]
			s.Rows = rows[1:]
		}
		out[name] = s
	}
	return out
}

// stage writes the workbook for d to a temporary file in the document's
// directory and forces it to stable storage. The final path is untouched:
// a crash after staging leaves the previous good document intact.
func (s *Store) stage(d *core.Dataset) (string, error) {
	wb, err := buildWorkbook(d)
	if err != nil {
		return "", err
	}
	defer wb.Close()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create document directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".dados-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("create temp document: %w", err)
	}
	if _, err := wb.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("sync temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp document: %w", err)
	}
	return tmp.Name(), nil
}

// commit makes the staged file the live document. The previous good copy
// goes to the .bak sidecar first, best effort; rename is the only mutation
// of the final path.
func (s *Store) commit(staged string) error {
	if _, err := os.Stat(s.path); err == nil {
		// Backups never block a save.
		if err := copyFile(s.path, s.path+".bak"); err != nil {
			slog.Warn("Backup of previous document failed", "path", s.path, "error", err)
		}
	}
	if err := os.Rename(staged, s.path); err != nil {
		os.Remove(staged)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
