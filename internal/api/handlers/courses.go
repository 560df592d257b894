package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golf/internal/config"
	"github.com/playmatatu/golf/internal/course"
	"github.com/playmatatu/golf/internal/models"
)

// CourseStore is the course persistence the handlers need.
type CourseStore interface {
	List(ctx context.Context, filter string, limit, page int) ([]models.Course, error)
	Get(ctx context.Context, id int) (*models.Course, error)
	Add(ctx context.Context, nc course.NewCourse) (*models.Course, error)
	Delete(ctx context.Context, id int) error
}

// CourseNotifier tells live sessions that a course went away.
type CourseNotifier func(ctx context.Context, courseID int) error

// ListCourses returns a page of courses, optionally filtered by name
func ListCourses(store CourseStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryInt(c, "limit", cfg.CoursePageSize, 1, 100)
		page := queryInt(c, "page", 0, 0, 0)

		courses, err := store.List(c.Request.Context(), c.Query("filter"), limit, page)
		if err != nil {
			log.Printf("[COURSE] List failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list courses"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"courses": courses, "limit": limit, "page": page})
	}
}

// GetCourse returns one course by id
func GetCourse(store CourseStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		crs, err := store.Get(c.Request.Context(), id)
		if errors.Is(err, course.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		if err != nil {
			log.Printf("[COURSE] Get %d failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load course"})
			return
		}
		c.JSON(http.StatusOK, crs)
	}
}

// CreateCourse validates and publishes a course from the editor
func CreateCourse(store CourseStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req course.NewCourse
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		crs, err := store.Add(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, course.ErrInvalidName) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var invalid *course.InvalidDataError
			if errors.As(err, &invalid) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Printf("[COURSE] Add failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save course"})
			return
		}
		c.JSON(http.StatusCreated, crs)
	}
}

// DeleteCourse removes a course. Admin only.
func DeleteCourse(store CourseStore, audit AuditLogger, notify CourseNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		adminUsername := c.GetString("admin_username")
		details := map[string]interface{}{"course_id": id}

		err := store.Delete(c.Request.Context(), id)
		if errors.Is(err, course.ErrNotFound) {
			audit.LogAction(c.Request.Context(), adminUsername, c.ClientIP(), c.FullPath(), "delete_course", details, false)
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		if err != nil {
			log.Printf("[COURSE] Delete %d failed: %v", id, err)
			audit.LogAction(c.Request.Context(), adminUsername, c.ClientIP(), c.FullPath(), "delete_course", details, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
			return
		}

		if notify != nil {
			if err := notify(c.Request.Context(), id); err != nil {
				log.Printf("[COURSE] Failed to notify live sessions about course %d: %v", id, err)
			}
		}
		audit.LogAction(c.Request.Context(), adminUsername, c.ClientIP(), c.FullPath(), "delete_course", details, true)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
