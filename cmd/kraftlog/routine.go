// ABOUTME: CLI commands for managing workout routines.
// ABOUTME: Supports create, list, show, add-workout, add-exercise, and delete.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"kraftlog/internal/models"
)

var (
	routineDescription string
)

var routineCmd = &cobra.Command{
	Use:     "routine",
	Aliases: []string{"r"},
	Short:   "Manage workout routines",
	Long: `Manage workout routines: the plans you train from.

A routine contains workouts, and each workout lists exercises in order.
All changes are saved locally first and synced in the background.

WORKFLOW:

  1. Create a routine:          kraftlog routine create "Push Day"
  2. Add a workout to it:       kraftlog routine add-workout <routine-id> "Chest"
  3. Add exercises in order:    kraftlog routine add-exercise <workout-id> <exercise-id> 1
  4. Review the plan:           kraftlog routine show <routine-id>`,
}

var routineCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new routine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := cfg.GetUserID()
		if err != nil {
			return err
		}

		r, err := routines.CreateRoutine(userID, args[0], routineDescription)
		if err != nil {
			return fmt.Errorf("failed to create routine: %w", err)
		}

		color.Green("✓ Created routine %q", r.Name)
		fmt.Printf("  ID: %s\n", r.ID)
		return nil
	},
}

var routineListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List routines",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := cfg.GetUserID()
		if err != nil {
			return err
		}

		online := client.Online(cmd.Context())
		list, err := routines.GetRoutinesByUserID(cmd.Context(), userID, online)
		if err != nil {
			return fmt.Errorf("failed to list routines: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No routines found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range list {
			desc := ""
			if r.Description != nil {
				desc = *r.Description
			}
			fmt.Printf("%s %s %s\n",
				faint.Sprint(r.ID.String()[:8]),
				padRight(r.Name, 24),
				faint.Sprint(desc))
		}
		return nil
	},
}

var routineShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a routine with its workouts and exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid routine id: %w", err)
		}

		r, err := routines.GetRoutine(id)
		if err != nil {
			return fmt.Errorf("failed to get routine: %w", err)
		}

		fmt.Printf("Routine: %s\n", r.Name)
		if r.Description != nil {
			fmt.Printf("Description: %s\n", *r.Description)
		}
		for _, w := range r.Workouts {
			fmt.Printf("\n  %s (%s)\n", w.Name, w.ID.String()[:8])
			for _, we := range w.Exercises {
				name := we.ExerciseName
				if name == "" {
					name = we.ExerciseID.String()[:8]
				}
				fmt.Printf("    %d. %s\n", we.OrderIndex, name)
			}
		}
		return nil
	},
}

var routineAddWorkoutCmd = &cobra.Command{
	Use:   "add-workout <routine-id> <name>",
	Short: "Add a workout to a routine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		routineID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid routine id: %w", err)
		}

		w := models.NewWorkout(routineID, args[1])
		if err := routines.AddWorkout(w); err != nil {
			return fmt.Errorf("failed to add workout: %w", err)
		}

		color.Green("✓ Added workout %q", w.Name)
		fmt.Printf("  ID: %s\n", w.ID)
		return nil
	},
}

var routineAddExerciseCmd = &cobra.Command{
	Use:   "add-exercise <workout-id> <exercise-id> <order>",
	Short: "Add an exercise to a workout at a position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		workoutID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid workout id: %w", err)
		}
		exerciseID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid exercise id: %w", err)
		}
		order, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid order %q: %w", args[2], err)
		}

		we := models.NewWorkoutExercise(workoutID, exerciseID, order)
		if err := routines.AddWorkoutExercise(we); err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added exercise at position %d", order)
		return nil
	},
}

var routineDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a routine and everything under it",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid routine id: %w", err)
		}

		if err := routines.DeleteRoutine(id); err != nil {
			return fmt.Errorf("failed to delete routine: %w", err)
		}

		color.Green("✓ Deleted routine %s", args[0][:8])
		return nil
	},
}

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the exercise catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := routines.ListExercises()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No exercises cached. Run 'kraftlog sync' while online.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range list {
			desc := ""
			if e.Description != nil {
				desc = *e.Description
			}
			fmt.Printf("%s %s %s\n",
				faint.Sprint(e.ID.String()[:8]),
				padRight(e.Name, 28),
				faint.Sprint(desc))
		}
		return nil
	},
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}

func init() {
	routineCreateCmd.Flags().StringVar(&routineDescription, "description", "", "Routine description")

	routineCmd.AddCommand(routineCreateCmd)
	routineCmd.AddCommand(routineListCmd)
	routineCmd.AddCommand(routineShowCmd)
	routineCmd.AddCommand(routineAddWorkoutCmd)
	routineCmd.AddCommand(routineAddExerciseCmd)
	routineCmd.AddCommand(routineDeleteCmd)

	rootCmd.AddCommand(routineCmd)
	rootCmd.AddCommand(exercisesCmd)
}
