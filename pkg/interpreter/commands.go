package interpreter

import (
	"context"
	"errors"
	"strings"

	"github.com/papercomputeco/neno/pkg/chat"
)

// ChatEnterReply confirms the switch to conversational mode.
const ChatEnterReply = "¡Claro! Estoy listo para charlar. Pregúntame lo que quieras. " +
	"(Di Neno, termina ... para salir del modo conversación)"

// ChatInterruptedReply answers a conversation turn that was cancelled.
const ChatInterruptedReply = "Conversación interrumpida. Puedes repetirlo o decir Neno, termina."

func hasPrefixAny(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func (i *Interpreter) mailCommand(_ context.Context, msg *message) (Result, bool) {
	if !hasPrefixAny(msg.trimmed, "neno, escribe un correo", "neno escribe un correo") {
		return Result{}, false
	}

	return i.act("Abriendo tu gestor de correo predeterminado.", &Action{
		Kind:    ActionOpenMail,
		Failure: "No pude abrir tu gestor de correo en este sistema.",
	}), true
}

func (i *Interpreter) documentCommand(_ context.Context, msg *message) (Result, bool) {
	if !hasPrefixAny(msg.trimmed,
		"neno, escribe un documento", "neno escribe un documento",
		"neno, escribe un texto", "neno escribe un texto",
	) {
		return Result{}, false
	}

	return i.act("Abriendo un documento en tu editor de texto predeterminado.", &Action{
		Kind:    ActionOpenEditor,
		Failure: "No pude abrir el editor de texto en este sistema.",
	}), true
}

func (i *Interpreter) terminalCommand(_ context.Context, msg *message) (Result, bool) {
	if !strings.HasPrefix(msg.trimmed, "neno") ||
		!containsAny(msg.trimmed, []string{"terminal", "consola", "cmd", "powershell"}) {
		return Result{}, false
	}

	return i.act("Abriendo la terminal predeterminada del sistema...", &Action{
		Kind:     ActionOpenTerminal,
		FollowUp: "Terminal abierta. Avísame cuando necesites otra cosa.",
		Failure:  "No pude abrir una terminal en este sistema.",
	}), true
}

// chatCommand enters and leaves conversational mode, and while in it routes
// every message to the backend.
func (i *Interpreter) chatCommand(ctx context.Context, msg *message) (Result, bool) {
	mentionsNeno := strings.Contains(msg.lower, "neno")

	i.mu.Lock()
	defer i.mu.Unlock()

	if mentionsNeno && strings.Contains(msg.lower, "charlemos") {
		if i.chat == nil || !i.chat.Available() {
			return Result{Reply: chat.ErrorSetup}, true
		}
		if err := i.chat.Start(); err != nil {
			i.logger.Warn("could not start conversation", "error", err)
			return Result{Reply: chat.FriendlyError(err)}, true
		}
		i.chatMode = true
		return Result{Reply: ChatEnterReply}, true
	}

	if !i.chatMode {
		return Result{}, false
	}

	if mentionsNeno && strings.Contains(msg.lower, "termina") {
		i.chatMode = false
		return Result{Reply: i.chat.End()}, true
	}

	// A failed turn keeps the conversation; the user can retry or say
	// "neno, termina".
	reply, err := i.chat.Send(ctx, msg.raw)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Result{Reply: ChatInterruptedReply}, true
		}
		return Result{Reply: chat.FriendlyError(err)}, true
	}
	return Result{Reply: reply}, true
}
