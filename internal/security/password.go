package security

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
	"videotube-server/internal/util"
)

const (
	DefaultPasswordCost = 10
	// MaxPasswordBytes : bcrypt учитывает только первые 72 байта
	MaxPasswordBytes = 72
)

var ErrPasswordTooLong = errors.New("password must not exceed 72 bytes")

// PasswordHasher : bcrypt с ограничением числа одновременных хэширований,
// чтобы CPU-тяжелая работа не забирала все ядра у обработки запросов
type PasswordHasher struct {
	cost int
	sem  *semaphore.Weighted
}

func NewPasswordHasher(cost int, workers int) *PasswordHasher {
	if cost == 0 {
		cost = DefaultPasswordCost
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &PasswordHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(workers)),
	}
}

// Hash : соленый bcrypt хэш, два вызова с одним паролем дают разные строки
func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", util.LogError("[PasswordHasher] не удалось создать хэш пароля", err)
	}
	return string(hash), nil
}

// Verify : false без ошибки, если пароль не совпадает или хэш поврежден
func (h *PasswordHasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil, nil
}
