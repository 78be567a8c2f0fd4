// Package quarkgl provides a minimal, predictable software 3D engine for point clouds.
//
// QuarkGL is intended for visualization: point sprites, simple scenes, and interactive
// views (orbit/zoom/pan). It is not a game engine and does not provide a GPU abstraction.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Clipping → Splatting → Resolve → Frame output.
//
// The renderer is software-only and draws into a caller-provided Target. Point colors are
// accumulated in a float buffer owned by the renderer so that additive blending of many
// faint points does not lose precision before the final resolve.
//
// Resources follow explicit ownership: geometry and materials are "resident" once the
// renderer has seen them and stay resident until Dispose is called. Renderer.Info reports
// the resident counts so leaks are observable.
package quarkgl
