package extract

// invoicePage mirrors the fixed NFC-e query page template: a content region
// with issuer, items table and total lines, and an info region with the
// access key and the general-information list. The item with code 123
// appears twice on purpose.
const invoicePage = `<html><body>
<div id="conteudo">
  <div class="txtTopo">Supermercado Bom Preco Ltda</div>
  <div class="text">CNPJ: 06.057.223/0001-71</div>
  <div class="text">Avenida Brasil, 1500, Loja 02, Centro, Rio de Janeiro, RJ, 20040-002</div>
  <table id="tabResult">
    <tr><td>
      <span class="txtTit">Arroz Branco 5kg</span>
      <span class="RCod">(Código: 123)</span>
      <span class="Rqtd">Qtde.:2</span>
      <span class="RUN">UN: UN</span>
      <span class="RvlUnit">Vl. Unit.:   5,00</span>
    </td></tr>
    <tr><td>
      <span class="txtTit">Feijao Preto 1kg</span>
      <span class="RCod">(Código: 456)</span>
      <span class="Rqtd">Qtde.:1</span>
      <span class="RUN">UN: UN</span>
      <span class="RvlUnit">Vl. Unit.:   3,50</span>
    </td></tr>
    <tr><td>
      <span class="txtTit">Arroz Branco 5kg</span>
      <span class="RCod">(Código: 123)</span>
      <span class="Rqtd">Qtde.:3</span>
      <span class="RUN">UN: UN</span>
      <span class="RvlUnit">Vl. Unit.:   5,00</span>
    </td></tr>
  </table>
  <div id="linhaTotal"><label>Qtd. total de itens:</label><span class="totalNumb">3</span></div>
  <div id="linhaTotal"><label>Valor total R$:</label><span class="totalNumb">28,50</span></div>
  <div id="linhaTotal"><label>Descontos R$:</label><span class="totalNumb">1,00</span></div>
  <div id="linhaTotal"><label>Valor a pagar R$:</label><span class="totalNumb">27,50</span></div>
  <div id="linhaTotal"><label class="tx">Cartão de Crédito</label><span class="totalNumb">27,50</span></div>
  <div id="linhaTotal"><label>Troco R$:</label><span class="totalNumb">0,00</span></div>
  <div class="txtObs"><ul><li>Trib aprox: R$ 0,90 Fed R$ 0,55 Est R$ 0,10 Mun Fonte: IBPT</li></ul></div>
  <div class="txtObs"></div>
  <div class="txtObs"></div>
</div>
<div id="infos">
  <div data-role="collapsible">
    <h4>Informações gerais da Nota</h4>
    <ul class="ui-listview">
      <li>
        <strong>Número:</strong> 123456
        <br><strong>Série:</strong> 1
        <br><strong>Emissão:</strong> 15/07/2023 10:30:45-03:00
        <br><strong>Protocolo de Autorização:</strong> 313230112345678  15/07/2023 às 10:30:46-03:00
      </li>
    </ul>
  </div>
  <div data-role="collapsible">
    <h4>Chave de acesso</h4>
    <span class="chave">3123 0306 0572 2300 0171 6500 1000 0002 2619 0024 2849</span>
  </div>
</div>
</body></html>`

// fixtureAccessKey is the cleaned form of the key in invoicePage.
const fixtureAccessKey = "31230306057223000171650010000022619000242849"
