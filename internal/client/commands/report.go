package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tu-usuario/expiry-monitor/internal/client/report"
	"github.com/tu-usuario/expiry-monitor/internal/client/state"
)

type reportCmd struct{}

func (reportCmd) Name() string        { return "report" }
func (reportCmd) Description() string { return "Genera el reporte PDF de vencimientos" }
func (reportCmd) Usage() string {
	return "report [-o archivo.pdf] [-month 1-12] [-year YYYY] [-category id]"
}

func (reportCmd) Run(ctx context.Context, deps *Deps, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	out := fs.String("o", "vencimientos.pdf", "archivo de salida")
	month := fs.Int("month", 0, "mes de vencimiento (1-12)")
	year := fs.Int("year", 0, "año de vencimiento")
	category := fs.String("category", "", "id de categoría")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *month < 0 || *month > 12 {
		return ErrUsage
	}

	sess, err := deps.Store.Load()
	if err != nil {
		return err
	}
	username := ""
	if sess != nil {
		username = sess.Username
	}

	st, err := loadState(ctx, deps)
	if err != nil {
		return err
	}
	st.SetFilters(state.Filters{
		Month:      time.Month(*month),
		Year:       *year,
		CategoryID: *category,
	})

	gen := report.NewExpiryReportGenerator()
	pdf, err := gen.Generate(st, username, deps.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, pdf, 0o644); err != nil {
		return fmt.Errorf("escribir reporte: %w", err)
	}
	fmt.Fprintf(deps.Out, "Reporte generado: %s (%d productos)\n", *out, len(st.Filtered()))
	return nil
}

func init() { RegisterCmd(reportCmd{}) }
