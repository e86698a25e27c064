package delivery

import (
	"net/http"
	"strconv"

	"taskbot-backend/internal/todo/usecase"

	"github.com/gin-gonic/gin"
)

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	todoUsecase usecase.TodoUsecase
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoUsecase usecase.TodoUsecase) *TodoHandler {
	return &TodoHandler{
		todoUsecase: todoUsecase,
	}
}

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	TaskType    string  `json:"task_type"`
}

// GetTodos returns all todos for the authenticated user
// GET /api/todos?status=pending&limit=50&offset=0
func (h *TodoHandler) GetTodos(c *gin.Context) {
	userID := c.GetString("userID")

	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	todos, total, err := h.todoUsecase.GetOwnerTodos(userID, statusPtr, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"todos": todos,
		"total": total,
	})
}

// GetTodoByID returns a specific todo
// GET /api/todos/:id
func (h *TodoHandler) GetTodoByID(c *gin.Context) {
	userID := c.GetString("userID")
	todoID := c.Param("id")

	todo, err := h.todoUsecase.GetTodoByID(userID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// CreateTodo creates a new todo manually
// POST /api/todos
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	todo, err := h.todoUsecase.CreateTodo(userID, req.Title, req.Description, req.DueDate, priority, req.TaskType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, todo)
}

// UpdateTodo updates an existing todo
// PUT /api/todos/:id
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID := c.GetString("userID")
	todoID := c.Param("id")

	var updates usecase.TodoUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoUsecase.UpdateTodo(userID, todoID, updates)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// UpdateTodoStatus is a convenience endpoint to just update status
// PATCH /api/todos/:id/status
func (h *TodoHandler) UpdateTodoStatus(c *gin.Context) {
	userID := c.GetString("userID")
	todoID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := usecase.TodoUpdateRequest{
		Status: &req.Status,
	}

	todo, err := h.todoUsecase.UpdateTodo(userID, todoID, updates)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// CompleteTodo marks a todo as done
// POST /api/todos/:id/complete
func (h *TodoHandler) CompleteTodo(c *gin.Context) {
	userID := c.GetString("userID")
	todoID := c.Param("id")

	todo, err := h.todoUsecase.CompleteTodo(userID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// DeleteTodo deletes a todo
// DELETE /api/todos/:id
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID := c.GetString("userID")
	todoID := c.Param("id")

	err := h.todoUsecase.DeleteTodo(userID, todoID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

func respondTodoError(c *gin.Context, err error) {
	if err.Error() == "todo not found" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	if err.Error() == "unauthorized" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
