package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gigforge/gigmatch/internal/db"
	"github.com/gigforge/gigmatch/internal/match"
	"github.com/gigforge/gigmatch/internal/observability"
	"github.com/gigforge/gigmatch/internal/types"
)

var (
	evaluateInput    string
	evaluateGigID    string
	evaluateDBURL    string
	evaluateSynonyms string
	evaluateJSON     bool
	evaluateVerbose  bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score candidates against a required skill set",
	Long: `Evaluate candidate skill sets against a list of required skills and print
them ranked by match score.

With --gig, the gig's required skills and its applicants are loaded from
the database. With --input, requirements and candidates come from a JSON
file and no database is needed:

  {
    "requiredSkills": [{"name": "React"}, {"name": "Node", "level": "Advanced"}],
    "candidates": [
      {"name": "alice", "skills": ["react, typescript", "node.js"]},
      {"name": "bob", "skills": ["python"]}
    ]
  }`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateInput, "input", "i", "", "Path to an evaluation input JSON file")
	evaluateCmd.Flags().StringVarP(&evaluateGigID, "gig", "g", "", "Gig ID to evaluate applicants for (loads from the database)")
	evaluateCmd.Flags().StringVar(&evaluateDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	evaluateCmd.Flags().StringVar(&evaluateSynonyms, "synonyms", "", "Path to a synonym table JSON file (defaults to the built-in table)")
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "Emit results as JSON instead of a table")
	evaluateCmd.Flags().BoolVarP(&evaluateVerbose, "verbose", "v", false, "Print the requirements and ranked results in detail")
	evaluateCmd.MarkFlagsMutuallyExclusive("input", "gig")
	evaluateCmd.MarkFlagsOneRequired("input", "gig")
	rootCmd.AddCommand(evaluateCmd)
}

// evaluateCandidate is one candidate entry in the input file. ID is
// optional; one is generated when absent so results can be correlated.
type evaluateCandidate struct {
	ID     uuid.UUID `json:"id,omitempty"`
	Name   string    `json:"name"`
	Skills []string  `json:"skills"`
}

type evaluateRequest struct {
	RequiredSkills []types.RequiredSkill `json:"requiredSkills"`
	Candidates     []evaluateCandidate   `json:"candidates"`
}

// evaluateResult pairs a ranked match result with the candidate's name.
type evaluateResult struct {
	Name          string   `json:"name"`
	MatchedSkills []string `json:"matchedSkills"`
	MatchScore    int      `json:"matchScore"`
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	var (
		req evaluateRequest
		err error
	)
	if evaluateGigID != "" {
		req, err = loadGigEvaluation(cmd)
	} else {
		req, err = loadFileEvaluation()
	}
	if err != nil {
		return err
	}
	if len(req.RequiredSkills) == 0 {
		return fmt.Errorf("input has no required skills")
	}
	if len(req.Candidates) == 0 {
		return fmt.Errorf("input has no candidates")
	}

	synonyms := match.DefaultSynonyms()
	if evaluateSynonyms != "" {
		synonyms, err = match.LoadSynonymsFile(evaluateSynonyms)
		if err != nil {
			return err
		}
	}
	engine := match.NewEngine(match.NewMatcher(synonyms))

	names := make(map[uuid.UUID]string, len(req.Candidates))
	candidates := make([]types.CandidateSkillSet, len(req.Candidates))
	for i, c := range req.Candidates {
		id := c.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		name := c.Name
		if name == "" {
			name = id.String()
		}
		names[id] = name
		candidates[i] = types.CandidateSkillSet{CandidateID: id, RawSkills: c.Skills}
	}

	results := engine.Evaluate(cmd.Context(), req.RequiredSkills, candidates)
	match.Rank(results)

	if evaluateVerbose {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintRequiredSkills(req.RequiredSkills)
		printer.PrintRankedResults(results)
	}

	ranked := make([]evaluateResult, len(results))
	for i, r := range results {
		ranked[i] = evaluateResult{
			Name:          names[r.CandidateID],
			MatchedSkills: r.MatchedSkills,
			MatchScore:    r.MatchScore,
		}
	}

	if evaluateJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	for i, r := range ranked {
		fmt.Fprintf(cmd.OutOrStdout(), "%2d. %-20s %3d%%", i+1, r.Name, r.MatchScore)
		if len(r.MatchedSkills) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  (%s)", strings.Join(r.MatchedSkills, ", "))
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// loadFileEvaluation reads requirements and candidates from --input.
func loadFileEvaluation() (evaluateRequest, error) {
	var req evaluateRequest
	data, err := os.ReadFile(evaluateInput)
	if err != nil {
		return req, fmt.Errorf("failed to read input: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse input: %w", err)
	}
	return req, nil
}

// loadGigEvaluation loads the gig named by --gig and its applicants from
// the database.
func loadGigEvaluation(cmd *cobra.Command) (evaluateRequest, error) {
	var req evaluateRequest

	gigID, err := uuid.Parse(evaluateGigID)
	if err != nil {
		return req, fmt.Errorf("invalid gig ID %q: %w", evaluateGigID, err)
	}

	dbURL := evaluateDBURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return req, fmt.Errorf("--gig requires --db-url or DATABASE_URL")
	}

	database, err := db.Connect(cmd.Context(), dbURL)
	if err != nil {
		return req, err
	}
	defer database.Close()

	gig, err := database.GetGig(cmd.Context(), gigID)
	if err != nil {
		return req, err
	}
	if gig == nil {
		return req, fmt.Errorf("gig not found: %s", gigID)
	}

	applicants, err := database.ListUsersByIDs(cmd.Context(), gig.Applicants)
	if err != nil {
		return req, err
	}

	req.RequiredSkills = gig.SkillsRequired
	for _, a := range applicants {
		req.Candidates = append(req.Candidates, evaluateCandidate{
			ID:     a.ID,
			Name:   a.Username,
			Skills: a.Skills,
		})
	}
	return req, nil
}
