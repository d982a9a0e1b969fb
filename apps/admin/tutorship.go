package main

import (
	"github.com/spf13/cobra"
)

func (cli *commandLine) tutorCmd() *cobra.Command {
	var teacherID, courseID int
	cmd := &cobra.Command{
		Use:         "tutor --teacher ID --course ID",
		Short:       "Make a teacher the tutor of a course",
		Args:        cobra.NoArgs,
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cli.teacherSvc.AssignTutorship(cmd.Context(), teacherID, courseID); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "teacher #%d now tutors course #%d", teacherID, courseID)
			return nil
		},
	}
	cmd.Flags().IntVar(&teacherID, "teacher", 0, "the teacher's id")
	cmd.Flags().IntVar(&courseID, "course", 0, "the course's id")
	_ = cmd.MarkFlagRequired("teacher")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}

func (cli *commandLine) untutorCmd() *cobra.Command {
	var teacherID int
	cmd := &cobra.Command{
		Use:         "untutor --teacher ID",
		Short:       "Remove a teacher's tutorship",
		Args:        cobra.NoArgs,
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cli.teacherSvc.RemoveTutorship(cmd.Context(), teacherID); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "teacher #%d no longer tutors a course", teacherID)
			return nil
		},
	}
	cmd.Flags().IntVar(&teacherID, "teacher", 0, "the teacher's id")
	_ = cmd.MarkFlagRequired("teacher")
	return cmd
}
