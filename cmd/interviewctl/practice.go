package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mock-interview-backend/internal/apiclient"
	"mock-interview-backend/internal/domain"
	"mock-interview-backend/internal/workflow"
	"mock-interview-backend/pkg/security"

	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a mock interview",
	Long:  "Upload an optional CV, generate questions for a job description and answer them one line at a time on stdin.",
	RunE:  runPractice,
}

var (
	cvPath        string
	jobText       string
	jobFile       string
	analysisDelay time.Duration
	syncAnswers   bool
)

func init() {
	practiceCmd.Flags().StringVarP(&cvPath, "cv", "c", "", "Path to a CV (PDF, JPEG, PNG, DOC or DOCX, up to 10MB)")
	practiceCmd.Flags().StringVarP(&jobText, "job", "j", "", "Job description text")
	practiceCmd.Flags().StringVarP(&jobFile, "job-file", "f", "", "Path to a file containing the job description")
	practiceCmd.Flags().DurationVar(&analysisDelay, "analysis-delay", workflow.DefaultAnalysisDelay, "Time spent analysing answers on completion")
	practiceCmd.Flags().BoolVar(&syncAnswers, "sync", false, "Also store answers on the server so the session can be exported")

	rootCmd.AddCommand(practiceCmd)
}

func runPractice(cmd *cobra.Command, args []string) error {
	if jobText != "" && jobFile != "" {
		return fmt.Errorf("--job and --job-file are mutually exclusive; provide only one")
	}
	description := jobText
	if jobFile != "" {
		data, err := os.ReadFile(jobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		description = string(data)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	client := newClient()
	wf := workflow.New(client, workflow.WithAnalysisDelay(analysisDelay))

	if cvPath != "" {
		file, err := loadCV(cvPath)
		if err != nil {
			return err
		}
		if err := wf.UploadCV(ctx, file); err != nil {
			return describe(err)
		}
		fmt.Fprintf(out, "Uploaded %s\n", wf.Snapshot().CV.FileName)
	}

	fmt.Fprintln(out, "Generating questions...")
	if err := wf.GenerateQuestionsFor(ctx, description); err != nil {
		return describe(err)
	}
	if err := wf.StartInterview(ctx); err != nil {
		return describe(err)
	}

	session := wf.Snapshot().Session
	fmt.Fprintf(out, "Interview started: %s (%s)\n\n", session.JobTitle, session.ID)

	answers := bufio.NewScanner(cmd.InOrStdin())
	for i, q := range session.Questions {
		fmt.Fprintf(out, "Q%d [%s, %s] %s\n> ", i+1, q.Category, q.Difficulty, q.Question)
		started := time.Now()
		if !answers.Scan() {
			if err := answers.Err(); err != nil {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			fmt.Fprintln(out)
			break
		}
		if err := wf.RecordResponse(domain.InterviewResponse{
			QuestionID: q.ID,
			Answer:     strings.TrimSpace(answers.Text()),
			Duration:   time.Since(started).Seconds(),
		}); err != nil {
			return describe(err)
		}
	}

	fmt.Fprintln(out, "\nAnalysing your answers...")
	if err := wf.CompleteInterview(ctx); err != nil {
		return describe(err)
	}

	snap := wf.Snapshot()
	if syncAnswers {
		if err := syncSession(ctx, client, snap.Session); err != nil {
			return err
		}
		fmt.Fprintf(out, "Synced %d answers to session %s\n", len(snap.Session.Responses), snap.Session.ID)
	}

	printSummary(out, snap)
	return nil
}

// syncSession replays the locally recorded answers onto the server session and closes it.
func syncSession(ctx context.Context, client *apiclient.Client, session *domain.InterviewSession) error {
	for _, r := range session.Responses {
		if _, err := client.RecordResponse(ctx, session.ID, r); err != nil {
			return fmt.Errorf("failed to sync answer %s: %w", r.QuestionID, err)
		}
	}
	if _, err := client.CompleteSession(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// loadCV reads a CV from disk the way a browser file picker would describe it.
func loadCV(path string) (domain.CVFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.CVFile{}, fmt.Errorf("failed to read CV: %w", err)
	}
	mimeType, err := security.DetectFileMIME(path)
	if err != nil {
		return domain.CVFile{}, err
	}
	file := domain.CVFile{Name: filepath.Base(path), MIMEType: mimeType, Size: info.Size()}

	// Oversized files are rejected by the workflow before any bytes are needed
	if info.Size() <= security.MaxCVSize {
		if file.Content, err = os.ReadFile(path); err != nil {
			return domain.CVFile{}, fmt.Errorf("failed to read CV: %w", err)
		}
	}
	return file, nil
}

// describe labels failures that came back from the API; guard failures already
// read as instructions.
func describe(err error) error {
	if workflow.IsGuardError(err) {
		return err
	}
	return fmt.Errorf("API request failed: %w", err)
}

func printSummary(out io.Writer, snap workflow.Snapshot) {
	s := snap.Session
	fmt.Fprintf(out, "Session %s %s\n", s.ID, s.Status)
	fmt.Fprintf(out, "Answered %d of %d questions\n", len(s.Responses), len(s.Questions))
	if s.StartedAt != nil && s.EndedAt != nil {
		fmt.Fprintf(out, "Duration: %s\n", s.EndedAt.Sub(*s.StartedAt).Round(time.Second))
	}
}
