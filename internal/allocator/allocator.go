// Package allocator implements the one-time allocation run performed when the
// admin starts a game: partitioning the roster into balanced teams, mapping
// the question pool onto member slots, and drawing distinct images per group.
package allocator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/scavhunt/internal/models"
)

var (
	// ErrNotEnoughUsers is returned when fewer than two users registered.
	ErrNotEnoughUsers = errors.New("at least two users are required to form teams")

	// ErrNotEnoughQuestions is returned when the question pool is smaller
	// than the largest group, which would leave a slot without a question.
	ErrNotEnoughQuestions = errors.New("question pool is smaller than the largest group")
)

// FormTeams shuffles the roster, partitions it into groups of 2-4 members and
// distributes the question pool across each group's slots. Every user lands
// in exactly one group, no group has fewer than two members, and within a
// group every pool question is assigned to exactly one slot.
func FormTeams(users []models.User, questionIDs []int64) ([]*models.Group, error) {
	if len(users) < 2 {
		return nil, ErrNotEnoughUsers
	}

	shuffled := make([]models.User, len(users))
	copy(shuffled, users)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	sizes := partition(len(shuffled))

	now := time.Now().Unix()
	groups := make([]*models.Group, 0, len(sizes))
	next := 0
	for _, size := range sizes {
		assignments, err := assignQuestions(size, questionIDs)
		if err != nil {
			return nil, err
		}

		group := &models.Group{
			ID:        uuid.New().String(),
			Slots:     make([]models.MemberSlot, size),
			CreatedAt: now,
		}
		for i := 0; i < size; i++ {
			group.Slots[i] = models.MemberSlot{
				UserID:      shuffled[next+i].ID,
				QuestionIDs: assignments[i],
			}
		}
		groups = append(groups, group)
		next += size
	}

	return groups, nil
}

// chooseGroupSize picks the preferred chunk size for n users. Multiples of 3
// and 4 divide evenly; otherwise the size with the smaller remainder wins
// (ties go to 4, which yields fewer groups), as long as at least one full
// group of 4 fits.
func chooseGroupSize(n int) int {
	switch {
	case n%3 == 0:
		return 3
	case n%4 == 0:
		return 4
	case n%4 <= n%3 && n/4 > 0:
		return 4
	default:
		return 3
	}
}

// partition splits n users into consecutive chunk sizes. A trailing chunk of
// one is never produced: with chunk size 3 the loner folds into the previous
// group (still within the four-slot record), with chunk size 4 the last full
// group donates a member instead, yielding a trailing 3 and 2.
func partition(n int) []int {
	size := chooseGroupSize(n)
	full := n / size
	rem := n % size

	var sizes []int
	for i := 0; i < full; i++ {
		sizes = append(sizes, size)
	}

	switch {
	case rem == 0:
	case rem == 1 && size == 3:
		sizes[len(sizes)-1] = 4
	case rem == 1 && size == 4:
		sizes[len(sizes)-1] = 3
		sizes = append(sizes, 2)
	default:
		sizes = append(sizes, rem)
	}

	return sizes
}

// assignQuestions maps the question pool onto the slots of one group so that
// every question is answered by exactly one member. Earlier slots absorb the
// surplus: with the standard four-question pool a group of 4 gets one question
// per slot, a group of 3 gets [2 1 1] and a group of 2 gets [2 2].
func assignQuestions(groupSize int, questionIDs []int64) ([][]int64, error) {
	if groupSize > len(questionIDs) {
		return nil, fmt.Errorf("%w: %d questions for a group of %d",
			ErrNotEnoughQuestions, len(questionIDs), groupSize)
	}

	base := len(questionIDs) / groupSize
	extra := len(questionIDs) % groupSize

	assignments := make([][]int64, groupSize)
	next := 0
	for i := 0; i < groupSize; i++ {
		count := base
		if i < extra {
			count++
		}
		assignments[i] = append([]int64(nil), questionIDs[next:next+count]...)
		next += count
	}

	return assignments, nil
}
