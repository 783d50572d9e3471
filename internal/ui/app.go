package ui

import (
	"InfiniteBoard/internal/board"
	"InfiniteBoard/internal/logx"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// RunApp opens the board window and blocks until it is closed.
func RunApp(b *board.Board, width, height float32) {
	myApp := app.NewWithID("io.infiniteboard")
	myWindow := myApp.NewWindow("Infinite Board")
	myWindow.Resize(fyne.NewSize(width, height))

	// Create the interactive board widget
	canvas := NewBoardWidget(b)

	// Create the toolbar and pass it a reference to the board
	toolbar := NewToolbar(b, myWindow)

	// Set up the main layout
	content := container.NewBorder(toolbar, nil, nil, nil, canvas)

	myWindow.SetContent(content)
	myWindow.Canvas().Focus(canvas)
	logx.Logger().Info("[BOARD] window opened", "session", b.ID)
	myWindow.ShowAndRun()
}
