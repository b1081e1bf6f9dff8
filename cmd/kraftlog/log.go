// ABOUTME: CLI commands for recording live workout sessions.
// ABOUTME: Start/finish sessions, record sets, delete sets, view history.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	setWeight float64
)

var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"l"},
	Short:   "Record workout sessions",
	Long: `Record live workout sessions against your routines.

A session is logged as a hierarchy: the session itself, the workouts
performed, the exercises within each workout, and the individual sets.
Everything is recorded locally first and synced in the background.

WORKFLOW:

  1. Start a session:       kraftlog log start <routine-id>
  2. Start a workout:       kraftlog log workout <session-id> <workout-id>
  3. Start an exercise:     kraftlog log exercise <log-workout-id> <exercise-id>
  4. Record sets:           kraftlog log set <log-exercise-id> 8 --weight 80
  5. Finish up:             kraftlog log done <log-exercise-id>
                            kraftlog log finish <session-id>`,
}

var logStartCmd = &cobra.Command{
	Use:   "start <routine-id>",
	Short: "Start a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := cfg.GetUserID()
		if err != nil {
			return err
		}
		routineID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid routine id: %w", err)
		}

		lr, err := sessions.StartSession(routineID, userID)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}

		color.Green("✓ Session started")
		fmt.Printf("  ID: %s\n", lr.ID)
		return nil
	},
}

var logWorkoutCmd = &cobra.Command{
	Use:   "workout <session-id> <workout-id>",
	Short: "Start a workout within a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid session id: %w", err)
		}
		workoutID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid workout id: %w", err)
		}

		lw, err := sessions.StartWorkout(sessionID, workoutID)
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}

		color.Green("✓ Workout started")
		fmt.Printf("  ID: %s\n", lw.ID)
		return nil
	},
}

var logExerciseCmd = &cobra.Command{
	Use:   "exercise <log-workout-id> <exercise-id>",
	Short: "Start an exercise within a logged workout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logWorkoutID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid log workout id: %w", err)
		}
		exerciseID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid exercise id: %w", err)
		}

		le, err := sessions.StartExercise(logWorkoutID, exerciseID)
		if err != nil {
			return fmt.Errorf("failed to start exercise: %w", err)
		}

		name := le.ExerciseName
		if name == "" {
			name = "exercise"
		}
		color.Green("✓ Started %s", name)
		fmt.Printf("  ID: %s\n", le.ID)
		return nil
	},
}

var logSetCmd = &cobra.Command{
	Use:   "set <log-exercise-id> <reps>",
	Short: "Record a set",
	Long: `Record a performed set. Sets are numbered automatically.

Examples:
  kraftlog log set 7c9e6679-7425-40de-944b-e07fc1f90ae7 8 --weight 80
  kraftlog log set 7c9e6679-7425-40de-944b-e07fc1f90ae7 12`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logExerciseID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid log exercise id: %w", err)
		}
		reps, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid reps %q: %w", args[1], err)
		}

		var weight *float64
		if cmd.Flags().Changed("weight") {
			weight = &setWeight
		}

		set, err := sessions.RecordSet(logExerciseID, reps, weight)
		if err != nil {
			return fmt.Errorf("failed to record set: %w", err)
		}

		if set.WeightKg != nil {
			color.Green("✓ Set %d: %d reps @ %.1f kg", set.SetNumber, set.Reps, *set.WeightKg)
		} else {
			color.Green("✓ Set %d: %d reps", set.SetNumber, set.Reps)
		}
		return nil
	},
}

var logDeleteSetCmd = &cobra.Command{
	Use:   "delete-set <set-id>",
	Short: "Delete a recorded set",
	Long:  `Delete a recorded set. Remaining sets are renumbered from 1.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid set id: %w", err)
		}

		if err := sessions.DeleteSet(id); err != nil {
			return fmt.Errorf("failed to delete set: %w", err)
		}

		color.Green("✓ Set deleted")
		return nil
	},
}

var logDoneCmd = &cobra.Command{
	Use:   "done <log-exercise-id>",
	Short: "Mark an exercise complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid log exercise id: %w", err)
		}

		le, err := sessions.CompleteExercise(id)
		if err != nil {
			return fmt.Errorf("failed to complete exercise: %w", err)
		}

		name := le.ExerciseName
		if name == "" {
			name = "Exercise"
		}
		color.Green("✓ %s complete", name)
		return nil
	},
}

var logDoneWorkoutCmd = &cobra.Command{
	Use:   "done-workout <log-workout-id>",
	Short: "Finish a workout within a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid log workout id: %w", err)
		}

		lw, err := sessions.FinishWorkout(id)
		if err != nil {
			return fmt.Errorf("failed to finish workout: %w", err)
		}

		dur := lw.EndDatetime.Sub(lw.StartDatetime).Round(time.Second)
		color.Green("✓ Workout finished (%s)", dur)
		return nil
	},
}

var logFinishCmd = &cobra.Command{
	Use:   "finish <session-id>",
	Short: "Finish a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid session id: %w", err)
		}

		lr, err := sessions.FinishSession(id)
		if err != nil {
			return fmt.Errorf("failed to finish session: %w", err)
		}

		dur := lr.EndDatetime.Sub(lr.StartDatetime).Round(time.Second)
		color.Green("✓ Session finished (%s)", dur)
		return nil
	},
}

var logHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show session history",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := cfg.GetUserID()
		if err != nil {
			return err
		}

		online := client.Online(cmd.Context())
		list, err := sessions.History(cmd.Context(), userID, online)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, lr := range list {
			state := "in progress"
			if lr.EndDatetime != nil {
				state = lr.EndDatetime.Sub(lr.StartDatetime).Round(time.Second).String()
			}
			fmt.Printf("%s %s %s\n",
				faint.Sprint(lr.ID.String()[:8]),
				lr.StartDatetime.Local().Format("2006-01-02 15:04"),
				state)
		}
		return nil
	},
}

func init() {
	logSetCmd.Flags().Float64Var(&setWeight, "weight", 0, "Weight in kg")

	logCmd.AddCommand(logStartCmd)
	logCmd.AddCommand(logWorkoutCmd)
	logCmd.AddCommand(logExerciseCmd)
	logCmd.AddCommand(logSetCmd)
	logCmd.AddCommand(logDeleteSetCmd)
	logCmd.AddCommand(logDoneCmd)
	logCmd.AddCommand(logDoneWorkoutCmd)
	logCmd.AddCommand(logFinishCmd)
	logCmd.AddCommand(logHistoryCmd)

	rootCmd.AddCommand(logCmd)
}
