package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmynk/scavhunt/internal/facematch"
	"github.com/mmynk/scavhunt/internal/game"
	"github.com/mmynk/scavhunt/internal/media"
	"github.com/mmynk/scavhunt/internal/metrics"
	"github.com/mmynk/scavhunt/internal/models"
	"github.com/mmynk/scavhunt/internal/qr"
	"github.com/mmynk/scavhunt/internal/realtime"
	"github.com/mmynk/scavhunt/internal/storage"
)

// GameService implements the per-user checkpoint interactions. Every
// operation re-derives the user's phase from the persisted flags before
// acting, so a stale client can never advance past a checkpoint it has not
// reached or re-enter one that has closed.
type GameService struct {
	store    storage.Store
	media    media.Store
	gate     *facematch.Gate
	verifier *qr.Verifier
	hub      *realtime.Hub
}

// NewGameService creates a GameService with the given backends.
func NewGameService(store storage.Store, mediaStore media.Store, gate *facematch.Gate, verifier *qr.Verifier, hub *realtime.Hub) *GameService {
	return &GameService{store: store, media: mediaStore, gate: gate, verifier: verifier, hub: hub}
}

// TeamMember is one teammate in the state payload.
type TeamMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Solved bool   `json:"solved"`
}

// QuestionView is the user's current riddle.
type QuestionView struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
}

// State is everything a client needs to render the user's current screen.
type State struct {
	Phase    game.Phase    `json:"phase"`
	GroupID  string        `json:"group_id,omitempty"`
	PhotoURL string        `json:"photo_url,omitempty"`
	Members  []TeamMember  `json:"members,omitempty"`
	Question *QuestionView `json:"question,omitempty"`
	// Answered and Assigned report this user's riddle progress.
	Answered int `json:"answered,omitempty"`
	Assigned int `json:"assigned,omitempty"`
}

// State evaluates the user's phase and assembles the matching payload.
// Clients call this on load, after every submission, and whenever the change
// feed reports their group changed.
func (s *GameService) State(ctx context.Context, userID string) (*State, error) {
	globals, err := s.store.GetGlobals(ctx)
	if err != nil {
		slog.Error("State failed loading globals", "user_id", userID, "error", err)
		return nil, err
	}

	group, err := s.store.GetGroupByMember(ctx, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	state := &State{Phase: game.Evaluate(globals, group)}
	if group == nil {
		return state, nil
	}

	state.GroupID = group.ID
	state.Members, err = s.teamMembers(ctx, group)
	if err != nil {
		return nil, err
	}

	slot := group.SlotOf(userID)
	if slot >= 0 {
		state.Answered = group.Slots[slot].Progress
		state.Assigned = len(group.Slots[slot].QuestionIDs)
	}

	switch state.Phase {
	case game.PhaseRiddle:
		if slot < 0 {
			return nil, preconditionf("user position not found in group")
		}
		if hintID, ok := group.Slots[slot].Current(); ok {
			hint, err := s.store.GetHint(ctx, hintID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, preconditionf("assigned question %d does not exist", hintID)
				}
				return nil, err
			}
			state.Question = &QuestionView{ID: hint.ID, Question: hint.Question}
		}
	case game.PhaseFinalAssembly, game.PhaseQRScan, game.PhaseDone:
		// The allocated image is only revealed once the group has converged.
		state.PhotoURL = group.PhotoURL
	}

	return state, nil
}

func (s *GameService) teamMembers(ctx context.Context, group *models.Group) ([]TeamMember, error) {
	members := make([]TeamMember, 0, len(group.Slots))
	for i := range group.Slots {
		user, err := s.store.GetUser(ctx, group.Slots[i].UserID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, preconditionf("group references missing user %s", group.Slots[i].UserID)
			}
			return nil, err
		}
		members = append(members, TeamMember{
			ID:     user.ID,
			Name:   user.Name,
			Solved: group.Slots[i].Solved,
		})
	}
	return members, nil
}

// FaceMatchResult reports a group photo submission.
type FaceMatchResult struct {
	// Matched is true when every teammate was identified in the photo.
	Matched bool `json:"matched"`

	// Scores maps teammate names to their best similarity score.
	Scores map[string]float64 `json:"scores"`

	// Missing names the teammates whose score fell below the threshold.
	Missing []string `json:"missing,omitempty"`
}

// SubmitGroupPhoto runs the face-match checkpoint: the submitted photo must
// contain every other member of the group, verified by one delegated
// comparison per teammate. Only a full match flips the group's found flag;
// a partial match changes nothing and names the missing teammates.
func (s *GameService) SubmitGroupPhoto(ctx context.Context, userID, photo string) (*FaceMatchResult, error) {
	slog.Info("SubmitGroupPhoto request received", "user_id", userID)

	group, err := s.requirePhase(ctx, userID, game.PhaseFaceMatch)
	if err != nil {
		return nil, err
	}

	photoBytes, err := facematch.DecodeImage(photo)
	if err != nil {
		return nil, validationf("photo is not a valid image: %v", err)
	}

	result := &FaceMatchResult{Scores: make(map[string]float64)}
	for i := range group.Slots {
		memberID := group.Slots[i].UserID
		if memberID == userID {
			continue
		}

		member, err := s.store.GetUser(ctx, memberID)
		if err != nil {
			return nil, preconditionf("group references missing user %s", memberID)
		}
		if member.SelfieURL == "" {
			return nil, preconditionf("teammate %s has no selfie on file", member.Name)
		}

		selfie, err := s.media.Get(ctx, selfieObject(member.ID))
		if err != nil {
			slog.Error("SubmitGroupPhoto failed fetching selfie", "member_id", member.ID, "error", err)
			return nil, preconditionf("teammate %s's selfie could not be loaded", member.Name)
		}

		match, err := s.gate.Check(ctx, selfie, photoBytes)
		if err != nil {
			metrics.FaceComparisons.WithLabelValues("error").Inc()
			slog.Error("SubmitGroupPhoto comparison failed", "member_id", member.ID, "error", err)
			return nil, externalErr(err)
		}

		result.Scores[member.Name] = match.Score
		if match.IsMatch {
			metrics.FaceComparisons.WithLabelValues("match").Inc()
		} else {
			metrics.FaceComparisons.WithLabelValues("no_match").Inc()
			result.Missing = append(result.Missing, member.Name)
		}
	}

	if len(result.Missing) > 0 {
		slog.Info("Group photo incomplete", "group_id", group.ID, "missing", result.Missing)
		return result, nil
	}

	flipped, err := s.store.MarkGroupFound(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if flipped {
		if err := s.store.MarkCheckpointCompleted(ctx, 1); err != nil {
			slog.Warn("failed to record checkpoint completion", "checkpoint", 1, "error", err)
		}
		metrics.CheckpointCompletions.WithLabelValues("1").Inc()
		s.hub.GroupChanged(group.ID)
	}

	result.Matched = true
	slog.Info("Group photo matched", "group_id", group.ID, "user_id", userID)

	return result, nil
}

// AnswerResult reports a riddle submission.
type AnswerResult struct {
	// Correct is true when the answer matched.
	Correct bool `json:"correct"`

	// SlotSolved is true when this was the user's last assigned question.
	SlotSolved bool `json:"slot_solved"`

	// GroupSolved is true when the whole group has now converged.
	GroupSolved bool `json:"group_solved"`

	// Next is the user's next question after a correct answer, if any remain.
	Next *QuestionView `json:"next,omitempty"`
}

// SubmitAnswer checks the user's current riddle answer. A correct answer
// advances to the next assigned question or marks the slot solved; when the
// last slot solves, the convergence check flips the group's location flag
// exactly once, regardless of how many members observe it simultaneously.
func (s *GameService) SubmitAnswer(ctx context.Context, userID, answer string) (*AnswerResult, error) {
	slog.Info("SubmitAnswer request received", "user_id", userID)

	if strings.TrimSpace(answer) == "" {
		return nil, validationf("answer is required")
	}

	group, err := s.requirePhase(ctx, userID, game.PhaseRiddle)
	if err != nil {
		return nil, err
	}

	slotIdx := group.SlotOf(userID)
	if slotIdx < 0 {
		return nil, preconditionf("user position not found in group")
	}
	slot := &group.Slots[slotIdx]

	hintID, ok := slot.Current()
	if !ok {
		return nil, conflictf("all of your questions are already answered")
	}

	hint, err := s.store.GetHint(ctx, hintID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, preconditionf("assigned question %d does not exist", hintID)
		}
		return nil, err
	}

	if !game.Matches(hint.Answer, answer) {
		metrics.Answers.WithLabelValues("wrong").Inc()
		return &AnswerResult{Correct: false}, nil
	}
	metrics.Answers.WithLabelValues("correct").Inc()

	if _, err := s.store.AdvanceSlot(ctx, group.ID, slotIdx, slot.Progress); err != nil {
		return nil, err
	}

	result := &AnswerResult{Correct: true}
	if slot.Progress+1 < len(slot.QuestionIDs) {
		next, err := s.store.GetHint(ctx, slot.QuestionIDs[slot.Progress+1])
		if err == nil {
			result.Next = &QuestionView{ID: next.ID, Question: next.Question}
		}
		s.hub.GroupChanged(group.ID)
		return result, nil
	}

	// Last assigned question: solve the slot, then run the convergence check.
	if _, err := s.store.MarkSlotSolved(ctx, group.ID, slotIdx); err != nil {
		return nil, err
	}
	result.SlotSolved = true

	solved, err := s.checkConvergence(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	result.GroupSolved = solved

	s.hub.GroupChanged(group.ID)
	slog.Info("Slot solved", "group_id", group.ID, "slot", slotIdx, "group_solved", solved)

	return result, nil
}

// checkConvergence re-reads the group and flips location_is_solved when every
// slot is solved. The conditional update makes the flip one-time: a second
// member racing through here observes zero rows affected and no-ops.
func (s *GameService) checkConvergence(ctx context.Context, groupID string) (bool, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	if !group.AllSolved() {
		return false, nil
	}
	if group.LocationIsSolved {
		return true, nil
	}

	flipped, err := s.store.MarkLocationSolved(ctx, groupID)
	if err != nil {
		return false, err
	}
	if flipped {
		if err := s.store.MarkCheckpointCompleted(ctx, 2); err != nil {
			slog.Warn("failed to record checkpoint completion", "checkpoint", 2, "error", err)
		}
		metrics.CheckpointCompletions.WithLabelValues("2").Inc()
		slog.Info("Group converged", "group_id", groupID)
	}

	return true, nil
}

// AssemblyResult reports a final-assembly submission.
type AssemblyResult struct {
	Correct bool `json:"correct"`
}

// SubmitAssembly checks the team's assembled location against the hidden
// target. Fields tolerate the same variations as riddle answers.
func (s *GameService) SubmitAssembly(ctx context.Context, userID, building, floor, aisle, section string) (*AssemblyResult, error) {
	slog.Info("SubmitAssembly request received", "user_id", userID)

	group, err := s.requirePhase(ctx, userID, game.PhaseFinalAssembly)
	if err != nil {
		return nil, err
	}

	globals, err := s.store.GetGlobals(ctx)
	if err != nil {
		return nil, err
	}
	if globals.Location.IsZero() {
		return nil, preconditionf("no game location has been set")
	}

	if !game.LocationMatches(globals.Location, building, floor, aisle, section) {
		return &AssemblyResult{Correct: false}, nil
	}

	flipped, err := s.store.MarkAssemblySolved(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if flipped {
		s.hub.GroupChanged(group.ID)
		slog.Info("Assembly solved", "group_id", group.ID)
	}

	return &AssemblyResult{Correct: true}, nil
}

// QRResult reports a QR scan submission.
type QRResult struct {
	// Correct is terminal success; anything else leaves the scanner active.
	Correct bool `json:"correct"`
}

// VerifyQR compares a scanned payload against the expected value. The match
// is exact and case-sensitive; a wrong payload is a visible retry state, not
// an error.
func (s *GameService) VerifyQR(ctx context.Context, userID, payload string) (*QRResult, error) {
	slog.Info("VerifyQR request received", "user_id", userID)

	group, err := s.requirePhase(ctx, userID, game.PhaseQRScan)
	if err != nil {
		return nil, err
	}

	if !s.verifier.Verify(payload) {
		return &QRResult{Correct: false}, nil
	}

	flipped, err := s.store.MarkFinished(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	if flipped {
		if err := s.store.MarkCheckpointCompleted(ctx, 3); err != nil {
			slog.Warn("failed to record checkpoint completion", "checkpoint", 3, "error", err)
		}
		metrics.CheckpointCompletions.WithLabelValues("3").Inc()
		s.hub.GroupChanged(group.ID)
		slog.Info("Final checkpoint reached", "group_id", group.ID, "user_id", userID)
	}

	return &QRResult{Correct: true}, nil
}

// requirePhase loads the user's group and verifies the persisted flags put
// them at the expected checkpoint. Precondition failures name what is
// missing; phase mismatches are conflicts.
func (s *GameService) requirePhase(ctx context.Context, userID string, want game.Phase) (*models.Group, error) {
	globals, err := s.store.GetGlobals(ctx)
	if err != nil {
		return nil, err
	}
	if !globals.GameHasStarted {
		return nil, conflictf("the game has not started")
	}

	group, err := s.store.GetGroupByMember(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, preconditionf("you are not in a group")
		}
		return nil, err
	}

	if phase := game.Evaluate(globals, group); phase != want {
		return nil, conflictf("this checkpoint is not active (current: %s)", phase)
	}

	return group, nil
}
