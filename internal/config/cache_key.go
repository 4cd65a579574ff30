package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:%d", studentID)
}

// QuizPoolKey returns the cache key for a quiz's question pool
func (r *CacheKeyStruct) QuizPoolKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:pool", quizID)
}

var CacheKey = NewCacheKeyStruct()
