package mocks

//go:generate mockgen -destination=mock_render.go -package=mocks github.com/abezemskiy/qrgen/internal/repositories/render Renderer
//go:generate mockgen -destination=mock_journal.go -package=mocks github.com/abezemskiy/qrgen/internal/repositories/journal Journal
