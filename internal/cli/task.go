package cli

import (
	"fmt"
)

type TaskAddCmd struct {
	Text string `arg:"" help:"Task text."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	task, err := ctx.Store.AddTask(c.Text)
	if err != nil {
		return err
	}
	fmt.Printf("Added task %s: %s\n", task.ID, task.Text)
	return nil
}

type TaskListCmd struct{}

func (c *TaskListCmd) Run(ctx *Context) error {
	tasks := ctx.Store.Tasks()
	if len(tasks) == 0 {
		fmt.Println("No active tasks. System idling...")
		return nil
	}
	for _, t := range tasks {
		fmt.Printf("  [ ] %s  %s\n", t.ID, t.Text)
	}
	return nil
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"ID of the task to complete."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	entry, err := ctx.Store.CompleteTask(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Task moved to Small Wins: %s\n", entry.Text)
	return nil
}
