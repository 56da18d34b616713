package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"collegeaccounts_backend/internals/features/finance/exam_fees/calculator"
	"collegeaccounts_backend/internals/helpers/domainerr"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute an exam fee record offline, without touching the database",
	Example: `  collegeaccounts calc --year 2024 --category "Board/University" --name "HSC Board Exam" \
    --this-count 100 --this-rate 50 --other-count 50 --other-rate 40 --expense 1000`,
	// tidak butuh env/DB
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := calcInputFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		rec, err := calculator.Evaluate(in)
		if err != nil {
			renderRejection(cmd.ErrOrStderr(), err)
			return err
		}
		renderRecord(cmd.OutOrStdout(), rec)
		return nil
	},
}

func init() {
	f := calcCmd.Flags()
	f.Int("year", 0, "academic year (2000-2050)")
	f.String("category", "", `"Board/University", "Internal" or "Application Fee"`)
	f.String("name", "", "exam name")
	f.Int64("this-count", 0, "students from this college")
	f.String("this-rate", "", "fee per student from this college")
	f.Int64("other-count", 0, "students from other colleges")
	f.String("other-rate", "", "fee per student from other colleges")
	f.String("expense", "", "exam management expense")
	f.String("govt", "", "govt treasury percent (default 10)")
	f.String("teachers", "", "teachers council percent (default 2)")
	f.String("staff", "", "staff & invigilators percent (default 56)")
	f.String("admin", "", "admin committee percent (default 32)")
}

// calcInputFromFlags: flag yang tidak diberikan = field absent (nil),
// supaya pesan MissingRequiredField sama dengan API.
func calcInputFromFlags(f *pflag.FlagSet) (calculator.ExamFeeInput, error) {
	in := calculator.ExamFeeInput{Percents: calculator.DefaultPercents()}
	in.Year, _ = f.GetInt("year")
	category, _ := f.GetString("category")
	in.ExamCategory = calculator.ExamCategory(category)
	in.ExamName, _ = f.GetString("name")

	if f.Changed("this-count") {
		n, _ := f.GetInt64("this-count")
		in.ThisCollegeCount = &n
	}
	if f.Changed("other-count") {
		n, _ := f.GetInt64("other-count")
		in.OtherCollegeCount = &n
	}

	decimals := []struct {
		flag string
		dst  **decimal.Decimal
	}{
		{"this-rate", &in.ThisCollegeRate},
		{"other-rate", &in.OtherCollegeRate},
		{"expense", &in.ExamManagementExpense},
	}
	for _, d := range decimals {
		if !f.Changed(d.flag) {
			continue
		}
		v, err := decimalFlag(f, d.flag)
		if err != nil {
			return in, err
		}
		*d.dst = &v
	}

	percents := []struct {
		flag string
		dst  *decimal.Decimal
	}{
		{"govt", &in.Percents.GovtTreasury},
		{"teachers", &in.Percents.TeachersCouncil},
		{"staff", &in.Percents.StaffInvigilators},
		{"admin", &in.Percents.AdminCommittee},
	}
	for _, p := range percents {
		if !f.Changed(p.flag) {
			continue
		}
		v, err := decimalFlag(f, p.flag)
		if err != nil {
			return in, err
		}
		*p.dst = v
	}
	return in, nil
}

func decimalFlag(f *pflag.FlagSet, name string) (decimal.Decimal, error) {
	raw, _ := f.GetString(name)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	return v, nil
}

func renderRecord(w io.Writer, rec calculator.ExamFeeRecord) {
	color.New(color.FgCyan).Fprintf(w, "\n%d · %s · %s\n", rec.Year, rec.ExamCategory, rec.ExamName)

	income := tablewriter.NewWriter(w)
	income.SetHeader([]string{"Source", "Students", "Rate", "Amount"})
	income.SetAlignment(tablewriter.ALIGN_RIGHT)
	income.Append([]string{"This college", strconv.FormatInt(rec.ThisCollegeCount, 10), money(rec.ThisCollegeRate),
		money(rec.ThisCollegeRate.Mul(decimal.NewFromInt(rec.ThisCollegeCount)))})
	income.Append([]string{"Other colleges", strconv.FormatInt(rec.OtherCollegeCount, 10), money(rec.OtherCollegeRate),
		money(rec.OtherCollegeRate.Mul(decimal.NewFromInt(rec.OtherCollegeCount)))})
	income.SetFooter([]string{"Total", strconv.FormatInt(rec.TotalStudents, 10), "", money(rec.TotalIncome)})
	income.Render()

	d := rec.Distribution
	dist := tablewriter.NewWriter(w)
	dist.SetHeader([]string{"Share", "Percent", "Amount"})
	dist.SetAlignment(tablewriter.ALIGN_RIGHT)
	dist.Append([]string{"Exam management", "", money(rec.ExamManagementExpense)})
	dist.Append([]string{"Govt treasury", d.GovtTreasury.Percent.String() + "%", money(d.GovtTreasury.Amount)})
	dist.Append([]string{"Teachers council", d.TeachersCouncil.Percent.String() + "%", money(d.TeachersCouncil.Amount)})
	dist.Append([]string{"Staff & invigilators", d.StaffInvigilators.Percent.String() + "%", money(d.StaffInvigilators.Amount)})
	dist.Append([]string{"Admin committee", d.AdminCommittee.Percent.String() + "%", money(d.AdminCommittee.Amount)})
	dist.SetFooter([]string{"Distributable fund", "", money(rec.DistributableFund)})
	dist.Render()

	color.New(color.FgGreen).Fprintf(w, "Total expenses: %s\n", money(rec.TotalExpenses))
}

func renderRejection(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	if de, ok := domainerr.As(err); ok {
		red.Fprintf(w, "✗ %s", de.Kind)
		if de.Field != "" {
			fmt.Fprintf(w, " [%s]", de.Field)
		}
		fmt.Fprintf(w, ": %s\n", de.Message)
		return
	}
	red.Fprintf(w, "✗ %v\n", err)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
