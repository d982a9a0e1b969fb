package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/centro/core/enrollment"
)

func (cli *commandLine) studentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "students",
		Short:       "List the students",
		Args:        cobra.NoArgs,
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			students, err := cli.studentSvc.QueryAll(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			heading(out, fmt.Sprintf("Students (%d)", len(students)))
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tDNI\tNAME\tAGE\tTOWN")
			for _, s := range students {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s %s\t%d\t%s\n", s.ID, s.DNI, s.Name, s.Surname, s.Age, s.Town)
			}
			return w.Flush()
		},
	}
}

func (cli *commandLine) enrollCmd() *cobra.Command {
	var (
		ne    enrollment.NewEnrollment
		grade float64
	)
	cmd := &cobra.Command{
		Use:         "enroll --student ID --subject ID [--grade GRADE] [--incidents TEXT]",
		Short:       "Enroll a student in a subject",
		Args:        cobra.NoArgs,
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("grade") {
				ne.Grade = &grade
			}
			if err := ne.Validate(cli.validate); err != nil {
				return err
			}
			e, err := cli.enrollmentSvc.Enroll(cmd.Context(), ne)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "enrollment #%d created", e.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&ne.StudentID, "student", 0, "the student's id")
	cmd.Flags().IntVar(&ne.SubjectID, "subject", 0, "the subject's id")
	cmd.Flags().Float64Var(&grade, "grade", 0, "the initial grade (0-10)")
	cmd.Flags().StringVar(&ne.Incidents, "incidents", "", "the initial incident notes")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func (cli *commandLine) gradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "grade ENROLLMENT_ID GRADE",
		Short:       "Set the grade of an enrollment",
		Args:        cobra.ExactArgs(2),
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			grade, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.Errorf("invalid grade %q", args[1])
			}
			if err = cli.enrollmentSvc.UpdateGrade(cmd.Context(), id, grade); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "enrollment #%d graded %.2f", id, grade)
			return nil
		},
	}
}

func (cli *commandLine) incidentCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "incident ENROLLMENT_ID TEXT...",
		Short:       "Append an incident note to an enrollment",
		Args:        cobra.MinimumNArgs(2),
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err = cli.enrollmentSvc.AppendIncident(cmd.Context(), id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "incident added to enrollment #%d", id)
			return nil
		},
	}
}

func (cli *commandLine) unenrollCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:         "unenroll ENROLLMENT_ID",
		Short:       "Remove an enrollment",
		Args:        cobra.ExactArgs(1),
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes {
				ok, err := cli.confirm(out, fmt.Sprintf("Remove enrollment #%d?", id))
				if err != nil {
					return err
				}
				if !ok {
					return errAborted
				}
			}
			if err = cli.enrollmentSvc.Remove(cmd.Context(), id); err != nil {
				return err
			}
			success(out, "enrollment #%d removed", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
